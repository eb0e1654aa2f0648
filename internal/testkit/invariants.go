package testkit

import (
	"fmt"

	"oracle/internal/explain"
)

// CheckTableInvariants runs a minimal set of rule-table invariants:
// 1) every rule has a nonempty language, a compiled pattern, and a
//    nonempty explanation
// 2) Rules() returns a copy, mutating it must not leak back
// 3) iteration order is stable across calls
func CheckTableInvariants(t *explain.Table) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}

	// 1) per-rule sanity
	rules := t.Rules()
	for i, rule := range rules {
		if rule.Language == "" {
			return fmt.Errorf("rule %d: empty language", i)
		}
		if rule.Pattern == nil {
			return fmt.Errorf("rule %d (%s): nil pattern", i, rule.Language)
		}
		if rule.Explanation == "" {
			return fmt.Errorf("rule %d (%s): empty explanation", i, rule.Language)
		}
	}

	// 2) copy semantics
	if len(rules) > 0 {
		saved := rules[0]
		rules[0] = explain.Rule{}
		fresh := t.Rules()
		if fresh[0].Language != saved.Language || fresh[0].Explanation != saved.Explanation {
			return fmt.Errorf("Rules() exposes internal storage")
		}
		rules[0] = saved
	}

	// 3) stable order
	again := t.Rules()
	if len(again) != len(rules) {
		return fmt.Errorf("rule count changed between calls: %d then %d", len(rules), len(again))
	}
	for i := range again {
		if again[i].Language != rules[i].Language || again[i].Pattern.String() != rules[i].Pattern.String() {
			return fmt.Errorf("rule order changed between calls at index %d", i)
		}
	}
	return nil
}
