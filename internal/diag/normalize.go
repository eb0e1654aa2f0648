package diag

import (
	"fmt"
	"sort"
)

// SortStable сортирует диагностики по: start, end, severity (desc),
// code (asc) для стабильного и детерминированного порядка вывода.
func SortStable(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		di, dj := diags[i], diags[j]
		// сначала по старту
		if c := di.Range.Start.Compare(dj.Range.Start); c != 0 {
			return c < 0
		}
		// затем по концу
		if c := di.Range.End.Compare(dj.Range.End); c != 0 {
			return c < 0
		}
		// затем по severity (по убыванию: Error > Warning > Info > Hint)
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		// затем по коду (по возрастанию)
		return di.Code < dj.Code
	})
}

// Dedup убирает точные повторы (по Code+Range+Message), сохраняя
// первое вхождение. Порядок выживших не меняется.
func Dedup(diags []Diagnostic) []Diagnostic {
	seen := make(map[string]bool, len(diags))
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		key := fmt.Sprintf("%s:%s:%s", d.Code, d.Range.String(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}
