package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"oracle/internal/diag"
	"oracle/internal/explain"
	"oracle/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// CommandExplainError is the workspace command that explains the
// diagnostic under the cursor.
const CommandExplainError = "error-oracle.explainError"

const (
	methodPublishDiagnostics = "errorOracle/publishDiagnostics"

	serverName         = "error-oracle"
	defaultLanguageID  = "plaintext"
	markupKindMarkdown = "markdown"
	messageTypeInfo    = 3
	searchActionTitle  = "Search the Web"
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Resolver *explain.Resolver
	Log      io.Writer
}

// Server handles stdio JSON-RPC for the error oracle. Оно само не
// диагностирует: снимки приходят от хоста, сервер их только объясняет.
type Server struct {
	in       *bufio.Reader
	out      *bufio.Writer
	sendMu   sync.Mutex
	mu       sync.Mutex
	resolver *explain.Resolver
	log      io.Writer

	docs      map[string]document
	snapshots map[string]diag.Snapshot
	policy    policy

	pending map[int64]responseHandler
	nextID  int64

	shutdownRequested bool
}

// document is what the oracle retains about an open file. Text is never
// stored; only the language identity matters for rule lookup.
type document struct {
	language string
	version  int
}

// responseHandler consumes the client's reply to a server-to-client
// request. It runs on the read loop goroutine.
type responseHandler func(result json.RawMessage, rpcErr *rpcError)

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = explain.NewResolver(explain.Builtin())
	}
	logOut := opts.Log
	if logOut == nil {
		logOut = os.Stderr
	}
	return &Server{
		in:        bufio.NewReader(in),
		out:       bufio.NewWriter(out),
		resolver:  resolver,
		log:       logOut,
		docs:      make(map[string]document),
		snapshots: make(map[string]diag.Snapshot),
		policy:    defaultPolicy(),
		pending:   make(map[int64]responseHandler),
	}
}

// Run serves LSP requests until shutdown.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			s.handleResponse(&msg)
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		if s.shutdownRequested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "workspace/executeCommand":
		return s.handleExecuteCommand(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case methodPublishDiagnostics:
		return s.handlePublishDiagnostics(msg)
	case "$/cancelRequest":
		// Every request is answered synchronously; nothing to cancel.
		return nil
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	if params.ClientInfo != nil {
		s.logf("initialize: client=%s %s", params.ClientInfo.Name, params.ClientInfo.Version)
	}
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    1,
			},
			HoverProvider: true,
			ExecuteCommandProvider: executeCommandOptions{
				Commands: []string{CommandExplainError},
			},
		},
		ServerInfo: serverInfo{
			Name:    serverName,
			Version: version.Plain(),
		},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.docs = make(map[string]document)
	s.snapshots = make(map[string]diag.Snapshot)
	s.mu.Unlock()
	return s.sendResponse(msg.ID, nil)
}

// Notification handlers never fail the server: a malformed push is the
// host's bug, not a reason to drop the session.

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didOpen: bad params: %v", err)
		return nil
	}
	uri := params.TextDocument.URI
	if uri == "" {
		return nil
	}
	language := params.TextDocument.LanguageID
	if language == "" {
		language = defaultLanguageID
	}
	s.mu.Lock()
	s.docs[uri] = document{language: language, version: params.TextDocument.Version}
	s.mu.Unlock()
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didChange: bad params: %v", err)
		return nil
	}
	uri := params.TextDocument.URI
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc := s.docs[uri]
	if doc.language == "" {
		doc.language = defaultLanguageID
	}
	doc.version = params.TextDocument.Version
	s.docs[uri] = doc
	s.mu.Unlock()
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didClose: bad params: %v", err)
		return nil
	}
	uri := params.TextDocument.URI
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.docs, uri)
	delete(s.snapshots, uri)
	s.mu.Unlock()
	return nil
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	return s.send(msg)
}

// sendRequest issues a server-to-client request. handler runs on the
// read loop goroutine once the matching response arrives.
func (s *Server) sendRequest(method string, params any, handler responseHandler) error {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	if handler != nil {
		s.pending[id] = handler
	}
	s.mu.Unlock()
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	}
	if err := s.send(msg); err != nil {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Server) handleResponse(msg *rpcMessage) {
	id, err := strconv.ParseInt(string(msg.ID), 10, 64)
	if err != nil {
		s.logf("response with unexpected id %s", string(msg.ID))
		return
	}
	s.mu.Lock()
	handler, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	handler(msg.Result, msg.Error)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, "lsp: "+format+"\n", args...)
}
