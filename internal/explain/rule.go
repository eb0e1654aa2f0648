package explain

import (
	"fmt"
	"regexp"
)

// Rule ties a language identifier to a message pattern and the canned
// explanation returned when the pattern matches.
//
// Patterns are matched anywhere inside the diagnostic message, never
// anchored to the full string. They may carry capture groups; nothing
// reads the captures today, the capability is only kept so future
// explanations can splice matched fragments in.
type Rule struct {
	Language    string
	Pattern     *regexp.Regexp
	Explanation string
}

// NewRule compiles pattern and builds a rule.
func NewRule(language, pattern, explanation string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule for %q: %w", language, err)
	}
	return Rule{Language: language, Pattern: re, Explanation: explanation}, nil
}

// MustRule is NewRule for static tables; it panics on a bad pattern.
func MustRule(language, pattern, explanation string) Rule {
	rule, err := NewRule(language, pattern, explanation)
	if err != nil {
		panic(err)
	}
	return rule
}
