// Package report reads diagnostic reports produced by external
// compilers, linters, and CI wrappers.
//
// A report is the batch form of the "explicitly passed snapshot" the
// oracle works on: one JSON document holding, per file, the diagnostics
// some tool already computed. The oracle never generates diagnostics
// itself; it only explains the ones a report delivers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"oracle/internal/diag"
)

// DefaultLanguage is assumed for files whose report entry carries no
// language identifier.
const DefaultLanguage = "plaintext"

// Report is a decoded diagnostics report.
type Report struct {
	Files []File
}

// File is one source file's worth of diagnostics.
type File struct {
	Path        string
	Language    string
	Diagnostics diag.Snapshot
}

// Wire format. Positions are zero-based line/character pairs, severities
// are lowercase names ("error", "warning", "info", "hint").
type reportJSON struct {
	Files []fileJSON `json:"files"`
}

type fileJSON struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

type diagnosticJSON struct {
	Message  string    `json:"message"`
	Severity string    `json:"severity"`
	Range    rangeJSON `json:"range"`
	Code     string    `json:"code,omitempty"`
	Source   string    `json:"source,omitempty"`
}

type rangeJSON struct {
	Start positionJSON `json:"start"`
	End   positionJSON `json:"end"`
}

type positionJSON struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Read decodes a report from r. Decoding is strict: an unknown severity
// name, a negative position, or a range that ends before it starts is an
// error, not something to guess around. A missing language falls back to
// DefaultLanguage. Per-file diagnostics are normalized: exact repeats
// are dropped and the rest sorted by position, so downstream output is
// stable no matter how the producing tool ordered them.
func Read(r io.Reader) (*Report, error) {
	var wire reportJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	rep := &Report{Files: make([]File, 0, len(wire.Files))}
	for i, wf := range wire.Files {
		if wf.Path == "" {
			return nil, fmt.Errorf("file %d: path is required", i+1)
		}
		language := wf.Language
		if language == "" {
			language = DefaultLanguage
		}
		file := File{
			Path:        wf.Path,
			Language:    language,
			Diagnostics: make(diag.Snapshot, 0, len(wf.Diagnostics)),
		}
		for j, wd := range wf.Diagnostics {
			d, err := decodeDiagnostic(wd)
			if err != nil {
				return nil, fmt.Errorf("%s: diagnostic %d: %w", wf.Path, j+1, err)
			}
			file.Diagnostics = append(file.Diagnostics, d)
		}
		// Отчёты из склеенных прогонов инструментов приходят с
		// повторами и в произвольном порядке.
		file.Diagnostics = diag.Dedup(file.Diagnostics)
		diag.SortStable(file.Diagnostics)
		rep.Files = append(rep.Files, file)
	}
	return rep, nil
}

// ReadFile reads a report from path.
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	rep, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}

func decodeDiagnostic(wd diagnosticJSON) (diag.Diagnostic, error) {
	severity, err := diag.ParseSeverity(wd.Severity)
	if err != nil {
		return diag.Diagnostic{}, err
	}
	rng, err := decodeRange(wd.Range)
	if err != nil {
		return diag.Diagnostic{}, err
	}
	return diag.Diagnostic{
		Message:  wd.Message,
		Severity: severity,
		Code:     wd.Code,
		Source:   wd.Source,
		Range:    rng,
	}, nil
}

func decodeRange(wr rangeJSON) (diag.Range, error) {
	start, err := decodePosition(wr.Start)
	if err != nil {
		return diag.Range{}, fmt.Errorf("range start: %w", err)
	}
	end, err := decodePosition(wr.End)
	if err != nil {
		return diag.Range{}, fmt.Errorf("range end: %w", err)
	}
	rng := diag.Range{Start: start, End: end}
	if rng.Empty() {
		return diag.Range{}, fmt.Errorf("range ends before it starts: %s", rng)
	}
	return rng, nil
}

func decodePosition(wp positionJSON) (diag.Position, error) {
	if wp.Line < 0 || wp.Character < 0 {
		return diag.Position{}, fmt.Errorf("negative position %d:%d", wp.Line, wp.Character)
	}
	return diag.Position{Line: wp.Line, Character: wp.Character}, nil
}

// Total returns the number of diagnostics across all files.
func (r *Report) Total() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Diagnostics)
	}
	return total
}

// CountMin returns the number of diagnostics with severity >= min.
func (r *Report) CountMin(min diag.Severity) int {
	count := 0
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			if d.Severity >= min {
				count++
			}
		}
	}
	return count
}
