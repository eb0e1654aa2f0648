package explain

// Table is an ordered, immutable collection of rules.
//
// Order is significant: lookups walk the table front to back and stop
// at the first hit, so when two rules for the same language could both
// match a message, the earlier-declared one always wins. The table is
// fixed at construction and never mutated afterwards, which keeps every
// resolver built on top of it safe for concurrent lookups.
type Table struct {
	rules []Rule
}

// NewTable builds a table from rules, preserving declaration order.
func NewTable(rules ...Rule) *Table {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Table{rules: copied}
}

// Len returns the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Rules returns a copy of the rule list in declaration order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}
