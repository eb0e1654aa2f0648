package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"oracle/internal/diag"
	"oracle/internal/driver"
)

func testReport() *driver.ResolvedReport {
	return &driver.ResolvedReport{Files: []driver.ResolvedFile{
		{
			Path:     "app/main.py",
			Language: "python",
			Entries: []driver.Resolved{{
				Diagnostic: diag.Diagnostic{
					Severity: diag.SevError,
					Code:     "E0602",
					Message:  "NameError: name 'x' is not defined",
					Range: diag.Range{
						Start: diag.Position{Line: 0, Character: 3},
						End:   diag.Position{Line: 0, Character: 8},
					},
				},
				Explanation: "Python hit a name it has never seen before.",
				Matched:     true,
				SearchURL:   "https://www.google.com/search?q=python%20NameError",
			}},
		},
		{
			Path:     "lib/util.rb",
			Language: "ruby",
			Entries: []driver.Resolved{{
				Diagnostic: diag.Diagnostic{
					Severity: diag.SevWarning,
					Message:  "unused variable zed",
					Range: diag.Range{
						Start: diag.Position{Line: 2, Character: 0},
						End:   diag.Position{Line: 2, Character: 3},
					},
				},
				Explanation: "No stored explanation matches this message yet.",
				SearchURL:   "https://www.google.com/search?q=ruby%20unused",
			}},
		},
	}}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loadedModel(t *testing.T) *browserModel {
	t.Helper()
	results := make(chan Result, 1)
	model, ok := NewBrowserModel("report.json", results).(*browserModel)
	if !ok {
		t.Fatal("unexpected model type")
	}
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(*browserModel)
	updated, _ = model.Update(resultMsg{Report: testReport()})
	return updated.(*browserModel)
}

func TestBrowserShowsSpinnerUntilResolved(t *testing.T) {
	results := make(chan Result, 1)
	model := NewBrowserModel("report.json", results)
	view := model.View()
	if !strings.Contains(view, "resolving report.json") {
		t.Fatalf("expected resolving banner, got %q", view)
	}
}

func TestBrowserListsDiagnostics(t *testing.T) {
	m := loadedModel(t)
	view := m.View()
	if !strings.Contains(view, "(2 of 2)") {
		t.Fatalf("expected entry count in header, got %q", view)
	}
	if !strings.Contains(view, "app/main.py:1") {
		t.Fatalf("expected first diagnostic location, got %q", view)
	}
	if !strings.Contains(view, "Python hit a name it has never seen before.") {
		t.Fatalf("expected the selected explanation in the pane, got %q", view)
	}
}

func TestBrowserNavigationMovesSelection(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("j"))
	m = updated.(*browserModel)
	e, ok := m.selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	if e.path != "lib/util.rb" {
		t.Fatalf("selection = %q, want lib/util.rb", e.path)
	}
	// Прокрутка вниз у края списка остаётся на месте.
	updated, _ = m.Update(key("j"))
	m = updated.(*browserModel)
	if e, _ := m.selected(); e.path != "lib/util.rb" {
		t.Fatalf("selection moved past the end to %q", e.path)
	}
}

func TestBrowserFilterNarrowsList(t *testing.T) {
	m := loadedModel(t)
	for _, k := range []string{"/", "z", "e", "d", "enter"} {
		updated, _ := m.Update(key(k))
		m = updated.(*browserModel)
	}
	if len(m.visible) != 1 {
		t.Fatalf("expected 1 visible entry, got %d", len(m.visible))
	}
	e, ok := m.selected()
	if !ok || !strings.Contains(e.res.Diagnostic.Message, "zed") {
		t.Fatalf("unexpected selection after filter: %+v", e)
	}

	updated, _ := m.Update(key("/"))
	m = updated.(*browserModel)
	updated, _ = m.Update(key("esc"))
	m = updated.(*browserModel)
	if len(m.visible) != 2 {
		t.Fatalf("expected filter cleared on esc, got %d visible", len(m.visible))
	}
}

func TestBrowserSearchKeyShowsURL(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("s"))
	m = updated.(*browserModel)
	if m.status != "https://www.google.com/search?q=python%20NameError" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !strings.Contains(m.View(), "search?q=python%20NameError") {
		t.Fatal("expected the search URL in the status bar")
	}
}

func TestBrowserQuitsOnResolveError(t *testing.T) {
	results := make(chan Result, 1)
	model := NewBrowserModel("report.json", results).(*browserModel)
	updated, cmd := model.Update(resultMsg{Err: errors.New("boom")})
	m := updated.(*browserModel)
	if m.err == nil {
		t.Fatal("expected the error recorded")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}
