package explain

// Resolver answers "what does this error message mean" for one fixed
// rule table.
type Resolver struct {
	table *Table
}

// NewResolver builds a resolver over table. A nil table behaves like an
// empty one; every lookup then lands on the fallback.
func NewResolver(table *Table) *Resolver {
	if table == nil {
		table = NewTable()
	}
	return &Resolver{table: table}
}

// Table returns the table the resolver was built with.
func (r *Resolver) Table() *Table {
	return r.table
}

// Resolve looks message up for languageID and reports whether a rule
// matched. Rules are tried in declaration order; a rule is considered
// only when its language equals languageID exactly, and it hits when
// its pattern matches anywhere inside message. The first hit wins.
//
// When nothing matches, Resolve returns the fallback explanation
// echoing the message, with matched == false. Неподходящий язык или
// пустое сообщение не являются ошибкой.
func (r *Resolver) Resolve(message, languageID string) (string, bool) {
	for _, rule := range r.table.rules {
		if rule.Language != languageID {
			continue
		}
		if rule.Pattern.MatchString(message) {
			return rule.Explanation, true
		}
	}
	return Fallback(message), false
}

// Explain is Resolve without the match flag. It never fails: unmatched
// input degrades to the fallback text.
func (r *Resolver) Explain(message, languageID string) string {
	text, _ := r.Resolve(message, languageID)
	return text
}
