package diag

// FindAt returns the first diagnostic whose range contains pos.
// The second result is false when no range contains the position;
// that is a normal outcome, not an error.
//
// FindAt does not filter by severity. Callers that only want to act on
// certain severities narrow the slice with FilterMin first.
func FindAt(diags []Diagnostic, pos Position) (Diagnostic, bool) {
	for _, d := range diags {
		if d.Range.Contains(pos) {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// FilterMin returns the diagnostics whose severity is at least min.
// Порядок исходного среза сохраняется.
func FilterMin(diags []Diagnostic, min Severity) []Diagnostic {
	if min == SevHint {
		return diags
	}
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity >= min {
			out = append(out, d)
		}
	}
	return out
}
