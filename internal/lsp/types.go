// Package lsp hosts the solgo language server session: it owns the
// configuration snapshot visible to the server and serves a minimal
// JSON-RPC loop over stdio.
package lsp

import "encoding/json"

// Message is a JSON-RPC 2.0 message, request or notification. Requests
// carry a non-nil ID.
type Message struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *ResponseError   `json:"error,omitempty"`
}

// ResponseError is a JSON-RPC error object.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC error codes used by the server.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)

// InitializeParams is the subset of the initialize request the server
// reads.
type InitializeParams struct {
	RootURI  string `json:"rootUri,omitempty"`
	RootPath string `json:"rootPath,omitempty"`
}

// InitializeResult announces server capabilities.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

// ServerCapabilities is the subset of capabilities solgo announces.
type ServerCapabilities struct {
	ReferencesProvider bool `json:"referencesProvider"`
	Workspace          struct {
		Configuration bool `json:"configuration"`
	} `json:"workspace"`
}

// ServerInfo identifies the server to the client.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// DidChangeConfigurationParams carries client-supplied settings.
type DidChangeConfigurationParams struct {
	Settings map[string]any `json:"settings"`
}

// DidChangeWatchedFilesParams notifies about changed files.
type DidChangeWatchedFilesParams struct {
	Changes []FileEvent `json:"changes"`
}

// FileEvent is one file change notification.
type FileEvent struct {
	URI  string `json:"uri"`
	Type int    `json:"type"`
}

// ShowMessageParams asks the client to display a message.
type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// MessageType is the severity of a window/showMessage notification.
type MessageType int

const (
	MessageError   MessageType = 1
	MessageWarning MessageType = 2
	MessageInfo    MessageType = 3
)
