package lsp

import (
	"encoding/json"
	"strings"

	"oracle/internal/diag"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	uri := params.TextDocument.URI
	pos := diag.Position{Line: params.Position.Line, Character: params.Position.Character}
	pol := s.currentPolicy()
	visible := diag.FilterMin(s.snapshotFor(uri), pol.hoverMin)
	found, ok := diag.FindAt(visible, pos)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	explanation := s.resolver.Explain(found.Message, s.languageFor(uri))
	hoverRange := rangeToWire(found.Range)
	result := hoverResult{
		Contents: markupContent{
			Kind:  markupKindMarkdown,
			Value: hoverMarkdown(found, explanation),
		},
		Range: &hoverRange,
	}
	return s.sendResponse(msg.ID, result)
}

// hoverMarkdown lays out the tooltip: a severity heading with the
// diagnostic identity, then the explanation.
func hoverMarkdown(d diag.Diagnostic, explanation string) string {
	var b strings.Builder
	b.WriteString("**")
	b.WriteString(d.Severity.String())
	b.WriteString("**")
	if d.Source != "" {
		b.WriteString(" ")
		b.WriteString(d.Source)
	}
	if d.Code != "" {
		b.WriteString(" `")
		b.WriteString(d.Code)
		b.WriteString("`")
	}
	b.WriteString("\n\n")
	b.WriteString(markdownBreaks(explanation))
	return b.String()
}

// markdownBreaks preserves the explanation's line structure under
// markdown rendering. Adjacent non-blank lines get the two-space hard
// break so they do not collapse into one paragraph.
func markdownBreaks(text string) string {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		if lines[i] != "" && lines[i+1] != "" {
			lines[i] += "  "
		}
	}
	return strings.Join(lines, "\n")
}
