package lsp

import (
	"encoding/json"
	"fmt"
	"strconv"

	"oracle/internal/diag"
)

// handlePublishDiagnostics ingests one document's diagnostics pushed by
// the host. The push replaces whatever the server stored for that URI;
// single malformed entries are dropped, not the whole snapshot.
func (s *Server) handlePublishDiagnostics(msg *rpcMessage) error {
	var params publishDiagnosticsParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("publishDiagnostics: bad params: %v", err)
		return nil
	}
	if params.URI == "" {
		return nil
	}
	snapshot := make(diag.Snapshot, 0, len(params.Diagnostics))
	for i, wire := range params.Diagnostics {
		d, err := fromWireDiagnostic(wire)
		if err != nil {
			s.logf("publishDiagnostics: %s diagnostic %d: %v", params.URI, i, err)
			continue
		}
		snapshot = append(snapshot, d)
	}
	s.mu.Lock()
	s.snapshots[params.URI] = snapshot
	if params.LanguageID != "" {
		doc := s.docs[params.URI]
		doc.language = params.LanguageID
		s.docs[params.URI] = doc
	}
	s.mu.Unlock()
	return nil
}

func fromWireDiagnostic(wire lspDiagnostic) (diag.Diagnostic, error) {
	severity := diag.SevError
	if wire.Severity != 0 {
		sev, err := diag.FromWire(wire.Severity)
		if err != nil {
			return diag.Diagnostic{}, err
		}
		severity = sev
	}
	rng, err := fromWireRange(wire.Range)
	if err != nil {
		return diag.Diagnostic{}, err
	}
	return diag.Diagnostic{
		Severity: severity,
		Code:     codeString(wire.Code),
		Source:   wire.Source,
		Message:  wire.Message,
		Range:    rng,
	}, nil
}

func fromWireRange(w rng) (diag.Range, error) {
	if w.Start.Line < 0 || w.Start.Character < 0 || w.End.Line < 0 || w.End.Character < 0 {
		return diag.Range{}, fmt.Errorf("negative position in range %d:%d-%d:%d",
			w.Start.Line, w.Start.Character, w.End.Line, w.End.Character)
	}
	out := diag.Range{
		Start: diag.Position{Line: w.Start.Line, Character: w.Start.Character},
		End:   diag.Position{Line: w.End.Line, Character: w.End.Character},
	}
	if out.Empty() {
		return diag.Range{}, fmt.Errorf("range %s ends before it starts", out)
	}
	return out, nil
}

func rangeToWire(r diag.Range) rng {
	return rng{
		Start: position{Line: r.Start.Line, Character: r.Start.Character},
		End:   position{Line: r.End.Line, Character: r.End.Character},
	}
}

// codeString renders a diagnostic code that hosts send either as a
// string or as a bare number.
func codeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var number int64
	if err := json.Unmarshal(raw, &number); err == nil {
		return strconv.FormatInt(number, 10)
	}
	return ""
}
