package diag

import "fmt"

// Position is a zero-based location inside a document.
type Position struct {
	Line      int
	Character int
}

// Compare orders positions by line, then character.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Character != other.Character {
		if p.Character < other.Character {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether p is strictly before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Range is a span inside a document, inclusive on both ends.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether pos falls inside the range.
// Обе границы включительно: диапазон 3..10 содержит 10, но не 11.
func (r Range) Contains(pos Position) bool {
	return pos.Compare(r.Start) >= 0 && pos.Compare(r.End) <= 0
}

// Empty reports whether the range is degenerate (end before start).
func (r Range) Empty() bool {
	return r.End.Before(r.Start)
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
