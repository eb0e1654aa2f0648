package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHint is for editor hints below informational level.
	SevHint Severity = iota
	// SevInfo is for informational diagnostics.
	SevInfo
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHint:
		return "HINT"
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a lowercase severity name into a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "hint":
		return SevHint, nil
	case "info":
		return SevInfo, nil
	case "warning":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevHint, fmt.Errorf("unknown severity: %q", name)
}

// Wire returns the LSP encoding of the severity (1=Error .. 4=Hint).
func (s Severity) Wire() int {
	switch s {
	case SevError:
		return 1
	case SevWarning:
		return 2
	case SevInfo:
		return 3
	case SevHint:
		return 4
	}
	return 1
}

// FromWire converts an LSP severity value into a Severity.
// Значения вне 1..4 считаются ошибкой протокола.
func FromWire(value int) (Severity, error) {
	switch value {
	case 1:
		return SevError, nil
	case 2:
		return SevWarning, nil
	case 3:
		return SevInfo, nil
	case 4:
		return SevHint, nil
	}
	return SevError, fmt.Errorf("severity out of range: %d", value)
}
