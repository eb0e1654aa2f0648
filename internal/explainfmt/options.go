package explainfmt

import (
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"oracle/internal/diag"
)

// Options configures rendering of a resolved report.
type Options struct {
	Color bool
	// Width caps header lines in Pretty output; 0 means unlimited.
	Width int
}

// severityColor returns a styled color for the severity label. A fresh
// Color is built per call so explicit enable/disable never leaks into
// other writers.
func severityColor(s diag.Severity, enabled bool) *color.Color {
	var c *color.Color
	switch s {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	case diag.SevInfo:
		c = color.New(color.FgCyan)
	default:
		c = color.New(color.Faint)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// truncate shortens value to the given display width, measuring after
// NFC normalization so decomposed sequences count as one column.
func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	value = norm.NFC.String(value)
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 1 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "…")
}
