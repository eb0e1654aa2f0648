package diag

// Diagnostic is a single finding reported by a compiler or linter.
// The oracle never produces diagnostics of its own; it only reads the
// ones the host tooling supplies.
type Diagnostic struct {
	Severity Severity
	Code     string
	Source   string
	Message  string
	Range    Range
}

// Snapshot is one document's diagnostics as delivered by the host at a
// single instant. The oracle treats it as read-only; a newer push
// replaces the snapshot wholesale instead of mutating it.
type Snapshot []Diagnostic
