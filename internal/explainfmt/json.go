package explainfmt

import (
	"encoding/json"
	"io"
	"strings"

	"oracle/internal/diag"
	"oracle/internal/driver"
)

// PositionJSON is a zero-based line/character pair.
type PositionJSON struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// RangeJSON mirrors the report wire format for ranges.
type RangeJSON struct {
	Start PositionJSON `json:"start"`
	End   PositionJSON `json:"end"`
}

// DiagnosticJSON is one explained diagnostic in machine-readable form.
type DiagnosticJSON struct {
	File        string    `json:"file"`
	Language    string    `json:"language"`
	Range       RangeJSON `json:"range"`
	Severity    string    `json:"severity"`
	Code        string    `json:"code,omitempty"`
	Source      string    `json:"source,omitempty"`
	Message     string    `json:"message"`
	Explanation string    `json:"explanation"`
	Matched     bool      `json:"matched"`
	SearchURL   string    `json:"search_url"`
}

// OutputJSON is the root of the JSON output.
type OutputJSON struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildOutput flattens a resolved report into the JSON output structure
// without serializing it.
func BuildOutput(res *driver.ResolvedReport) OutputJSON {
	diagnostics := make([]DiagnosticJSON, 0, res.Total())
	for _, file := range res.Files {
		for _, entry := range file.Entries {
			d := entry.Diagnostic
			diagnostics = append(diagnostics, DiagnosticJSON{
				File:        file.Path,
				Language:    file.Language,
				Range:       makeRange(d.Range),
				Severity:    strings.ToLower(d.Severity.String()),
				Code:        d.Code,
				Source:      d.Source,
				Message:     d.Message,
				Explanation: entry.Explanation,
				Matched:     entry.Matched,
				SearchURL:   entry.SearchURL,
			})
		}
	}
	return OutputJSON{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON renders a resolved report as indented JSON with a stable field
// order.
func JSON(w io.Writer, res *driver.ResolvedReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildOutput(res))
}

func makeRange(r diag.Range) RangeJSON {
	return RangeJSON{
		Start: PositionJSON{Line: r.Start.Line, Character: r.Start.Character},
		End:   PositionJSON{Line: r.End.Line, Character: r.End.Character},
	}
}
