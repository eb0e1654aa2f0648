package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"testing"

	"oracle/internal/diag"
)

// testServer wires a server to an in-memory client so handlers can be
// driven directly and outgoing frames decoded.
type testServer struct {
	*Server
	out *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	var out bytes.Buffer
	server := NewServer(bytes.NewReader(nil), &out, ServerOptions{Log: io.Discard})
	return &testServer{Server: server, out: &out}
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	return payload
}

func (ts *testServer) notify(t *testing.T, method string, params any) {
	t.Helper()
	if err := ts.handleMessage(&rpcMessage{Method: method, Params: mustMarshal(t, params)}); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

func (ts *testServer) request(t *testing.T, id int, method string, params any) {
	t.Helper()
	msg := &rpcMessage{
		ID:     json.RawMessage(strconv.Itoa(id)),
		Method: method,
		Params: mustMarshal(t, params),
	}
	if err := ts.handleMessage(msg); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

// drain decodes everything the server wrote since the last call.
func (ts *testServer) drain(t *testing.T) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(ts.out.Bytes()))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("read outgoing frame: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode outgoing frame: %v", err)
		}
		msgs = append(msgs, msg)
	}
	ts.out.Reset()
	return msgs
}

// response finds the reply to request id among drained messages.
func response(t *testing.T, msgs []rpcMessage, id int) rpcMessage {
	t.Helper()
	want := strconv.Itoa(id)
	for _, msg := range msgs {
		if msg.Method == "" && string(msg.ID) == want {
			return msg
		}
	}
	t.Fatalf("no response for id %d among %d messages", id, len(msgs))
	return rpcMessage{}
}

// findRequest finds the first server-to-client request with the method.
func findRequest(t *testing.T, msgs []rpcMessage, method string) rpcMessage {
	t.Helper()
	for _, msg := range msgs {
		if msg.Method == method && len(msg.ID) > 0 {
			return msg
		}
	}
	t.Fatalf("no %s request among %d messages", method, len(msgs))
	return rpcMessage{}
}

// findNotification finds the first notification with the method.
func findNotification(t *testing.T, msgs []rpcMessage, method string) rpcMessage {
	t.Helper()
	for _, msg := range msgs {
		if msg.Method == method && len(msg.ID) == 0 {
			return msg
		}
	}
	t.Fatalf("no %s notification among %d messages", method, len(msgs))
	return rpcMessage{}
}

func (ts *testServer) openDoc(t *testing.T, uri, languageID string) {
	t.Helper()
	ts.notify(t, "textDocument/didOpen", didOpenParams{
		TextDocument: textDocumentItem{
			URI:        uri,
			LanguageID: languageID,
			Version:    1,
			Text:       "",
		},
	})
}

func (ts *testServer) pushDiagnostics(t *testing.T, uri, languageID string, diags []lspDiagnostic) {
	t.Helper()
	ts.notify(t, methodPublishDiagnostics, publishDiagnosticsParams{
		URI:         uri,
		LanguageID:  languageID,
		Diagnostics: diags,
	})
}

func wireRange(startLine, startChar, endLine, endChar int) rng {
	return rng{
		Start: position{Line: startLine, Character: startChar},
		End:   position{Line: endLine, Character: endChar},
	}
}

func sampleNameError() lspDiagnostic {
	return lspDiagnostic{
		Range:    wireRange(4, 0, 4, 10),
		Severity: diag.SevError.Wire(),
		Code:     json.RawMessage(`"E0602"`),
		Source:   "pyflakes",
		Message:  "NameError: name 'count' is not defined",
	}
}
