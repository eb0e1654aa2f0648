package explainfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"oracle/internal/driver"
)

// Pretty renders a resolved report for humans. Each diagnostic gets a
// severity-colored header
//
//	SEV path:line:col [code] message
//
// followed by its explanation indented underneath, line breaks
// preserved. Line/column numbers are shown 1-based, the way editors
// display them.
func Pretty(w io.Writer, res *driver.ResolvedReport, opts Options) {
	first := true
	for _, file := range res.Files {
		for _, entry := range file.Entries {
			if !first {
				fmt.Fprintln(w)
			}
			first = false

			d := entry.Diagnostic
			label := d.Severity.String()
			rest := fmt.Sprintf("%s:%d:%d", file.Path, d.Range.Start.Line+1, d.Range.Start.Character+1)
			if d.Code != "" {
				rest += " [" + d.Code + "]"
			}
			rest += " " + firstLine(d.Message)
			if opts.Width > 0 {
				rest = truncate(rest, opts.Width-runewidth.StringWidth(label)-1)
			}

			c := severityColor(d.Severity, opts.Color)
			fmt.Fprintf(w, "%s %s\n", c.Sprint(label), rest)
			for _, line := range strings.Split(entry.Explanation, "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
}

// firstLine keeps multi-line compiler messages from wrecking the
// one-line header; the full message is always in the JSON output.
func firstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}
