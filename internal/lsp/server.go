package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/solgo-dev/solgo/internal/event"
	"github.com/solgo-dev/solgo/internal/logging"
)

// Server speaks JSON-RPC over a byte stream (stdio in practice) and
// dispatches the handful of lifecycle and workspace methods solgo
// implements. Configuration errors are reported to the client as
// window/showMessage notifications rather than crashing the session.
type Server struct {
	session *Session
	bus     *event.Bus
	version string

	reader *bufio.Reader

	writeMu sync.Mutex
	writer  io.Writer

	initialized bool
	shutdown    bool
}

// NewServer creates a server reading requests from r and writing
// responses to w. session may be nil until initialize arrives with a
// root; newSession is called to build it.
func NewServer(r io.Reader, w io.Writer, session *Session, bus *event.Bus, version string) *Server {
	srv := &Server{
		session: session,
		bus:     bus,
		version: version,
		reader:  bufio.NewReader(r),
		writer:  w,
	}
	if bus != nil {
		// Resolution failures become client-visible messages no matter
		// which collaborator triggered the pass.
		_ = bus.Subscribe(event.ConfigFailed, func(e event.Event) {
			srv.showMessage(MessageError, fmt.Sprintf("solgo configuration error: %s", e.Error))
		})
	}
	return srv
}

// Run processes messages until the stream closes or the client sends
// exit. It returns nil on an orderly exit.
func (s *Server) Run() error {
	log := logging.For("lsp")
	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch msg.Method {
		case "initialize":
			s.handleInitialize(msg)
		case "initialized":
			// No-op acknowledgment from the client.
		case "shutdown":
			s.shutdown = true
			s.reply(msg, nil, nil)
		case "exit":
			return nil
		case "workspace/didChangeConfiguration":
			s.handleDidChangeConfiguration(msg)
		case "workspace/didChangeWatchedFiles":
			s.handleDidChangeWatchedFiles(msg)
		default:
			log.Debug().Str("method", msg.Method).Msg("unhandled method")
			if msg.ID != nil {
				s.reply(msg, nil, &ResponseError{Code: CodeMethodNotFound, Message: msg.Method})
			}
		}
	}
}

func (s *Server) handleInitialize(msg *Message) {
	var params InitializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			s.reply(msg, nil, &ResponseError{Code: CodeInvalidParams, Message: err.Error()})
			return
		}
	}

	if s.session == nil {
		root := params.RootPath
		if root == "" {
			root = strings.TrimPrefix(params.RootURI, "file://")
		}
		s.session = NewSession(root, "", s.bus)
	}
	s.initialized = true

	result := InitializeResult{
		ServerInfo: ServerInfo{Name: "solgo", Version: s.version},
	}
	result.Capabilities.ReferencesProvider = true
	result.Capabilities.Workspace.Configuration = true
	s.reply(msg, result, nil)
}

func (s *Server) handleDidChangeConfiguration(msg *Message) {
	if s.session == nil {
		return
	}
	var params DidChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.showMessage(MessageError, fmt.Sprintf("solgo: malformed configuration: %v", err))
		return
	}
	// Errors are already published on the bus and surfaced via
	// showMessage; the previous snapshot stays in effect.
	_ = s.session.DidChangeConfiguration(params.Settings)
}

func (s *Server) handleDidChangeWatchedFiles(msg *Message) {
	if s.session == nil {
		return
	}
	var params DidChangeWatchedFilesParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return
	}
	if len(params.Changes) > 0 {
		_ = s.session.Reload()
	}
}

// showMessage sends a window/showMessage notification to the client.
func (s *Server) showMessage(t MessageType, text string) {
	s.write(&Message{
		JSONRPC: "2.0",
		Method:  "window/showMessage",
		Params:  mustMarshal(ShowMessageParams{Type: t, Message: text}),
	})
}

func (s *Server) reply(req *Message, result any, rerr *ResponseError) {
	if req.ID == nil {
		return
	}
	s.write(&Message{JSONRPC: "2.0", ID: req.ID, Result: result, Error: rerr})
}

// readMessage reads one Content-Length framed JSON-RPC message.
func (s *Server) readMessage() (*Message, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if rest, ok := strings.CutPrefix(line, "Content-Length:"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, fmt.Errorf("bad Content-Length header: %w", err)
			}
			contentLength = n
		}
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("malformed JSON-RPC message: %w", err)
	}
	return &msg, nil
}

func (s *Server) write(msg *Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logger := logging.For("lsp")
		logger.Error().Err(err).Msg("marshaling outgoing message")
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(payload))
	s.writer.Write(payload)
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
