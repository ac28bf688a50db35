package lsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, msg any) string {
	t.Helper()
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(payload), payload)
}

func request(t *testing.T, id int, method string, params any) string {
	t.Helper()
	raw := json.RawMessage(fmt.Sprintf("%d", id))
	var p json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		require.NoError(t, err)
		p = data
	}
	return frame(t, Message{JSONRPC: "2.0", ID: &raw, Method: method, Params: p})
}

func notification(t *testing.T, method string, params any) string {
	t.Helper()
	var p json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		require.NoError(t, err)
		p = data
	}
	return frame(t, Message{JSONRPC: "2.0", Method: method, Params: p})
}

func decodeFrames(t *testing.T, out string) []Message {
	t.Helper()
	var msgs []Message
	for out != "" {
		_, rest, ok := strings.Cut(out, "\r\n\r\n")
		require.True(t, ok, "missing frame separator in %q", out)
		var n int
		_, err := fmt.Sscanf(out, "Content-Length: %d", &n)
		require.NoError(t, err)
		var msg Message
		require.NoError(t, json.Unmarshal([]byte(rest[:n]), &msg))
		msgs = append(msgs, msg)
		out = rest[n:]
	}
	return msgs
}

func TestServerInitializeAndShutdown(t *testing.T) {
	dir := t.TempDir()

	var in bytes.Buffer
	in.WriteString(request(t, 1, "initialize", InitializeParams{RootPath: dir}))
	in.WriteString(notification(t, "initialized", nil))
	in.WriteString(request(t, 2, "shutdown", nil))
	in.WriteString(notification(t, "exit", nil))

	var out bytes.Buffer
	srv := NewServer(&in, &out, nil, nil, "test")
	require.NoError(t, srv.Run())

	msgs := decodeFrames(t, out.String())
	require.Len(t, msgs, 2)

	var result InitializeResult
	data, err := json.Marshal(msgs[0].Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "solgo", result.ServerInfo.Name)
	assert.True(t, result.Capabilities.Workspace.Configuration)
}

func TestServerDidChangeConfiguration(t *testing.T) {
	dir := t.TempDir()
	session := NewSession(dir, "", nil)

	var in bytes.Buffer
	in.WriteString(request(t, 1, "initialize", InitializeParams{RootPath: dir}))
	in.WriteString(notification(t, "workspace/didChangeConfiguration", DidChangeConfigurationParams{
		Settings: map[string]any{
			"lsp": map[string]any{
				"find_references": map[string]any{"include_declarations": true},
			},
		},
	}))
	in.WriteString(notification(t, "exit", nil))

	var out bytes.Buffer
	srv := NewServer(&in, &out, session, nil, "test")
	require.NoError(t, srv.Run())

	assert.True(t, session.IncludeDeclarations())
}

func TestServerUnknownRequestGetsError(t *testing.T) {
	dir := t.TempDir()
	session := NewSession(dir, "", nil)

	var in bytes.Buffer
	in.WriteString(request(t, 1, "textDocument/hover", nil))
	in.WriteString(notification(t, "exit", nil))

	var out bytes.Buffer
	srv := NewServer(&in, &out, session, nil, "test")
	require.NoError(t, srv.Run())

	msgs := decodeFrames(t, out.String())
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Error)
	assert.Equal(t, CodeMethodNotFound, msgs[0].Error.Code)
}
