package explainfmt

import (
	"fmt"
	"io"

	"oracle/internal/driver"
)

// Short renders one grep-friendly line per diagnostic, without
// explanations:
//
//	path:line:col: SEV[code]: message
func Short(w io.Writer, res *driver.ResolvedReport) {
	for _, file := range res.Files {
		for _, entry := range file.Entries {
			d := entry.Diagnostic
			sev := d.Severity.String()
			if d.Code != "" {
				sev += "[" + d.Code + "]"
			}
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
				file.Path, d.Range.Start.Line+1, d.Range.Start.Character+1, sev, firstLine(d.Message))
		}
	}
}
