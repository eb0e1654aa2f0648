package fuzztests

import "testing"

// addMessageSeeds populates the corpus with messages the builtin table
// recognizes plus shapes that historically caused trouble: empty input,
// multi-line compiler output, wide Unicode, regex metacharacters.
func addMessageSeeds(f *testing.F) {
	seeds := []struct{ language, message string }{
		{"python", "NameError: name 'x' is not defined"},
		{"python", "IndentationError: unexpected indent"},
		{"python", "TypeError: unsupported operand type(s) for +: 'int' and 'str'"},
		{"typescript", "Cannot find name 'foo'."},
		{"javascript", "TypeError: Cannot read properties of undefined (reading 'map')"},
		{"go", "undefined: fmt.Printlnn"},
		{"rust", "error[E0308]: mismatched types"},
		{"java", "error: cannot find symbol"},
		{"c", "implicit declaration of function 'printf'"},
		{"ruby", "undefined method `upcase' for nil:NilClass"},
		{"", ""},
		{"plaintext", "segmentation fault (core dumped)"},
		{"python", "Traceback (most recent call last):\n  File \"app.py\", line 1\nNameError: name 'x' is not defined"},
		{"go", "ошибка: неопределённый идентификатор"},
		{"regex", `a+b*c?(d|e)[f-g]{2}\`},
	}
	for _, seed := range seeds {
		f.Add(seed.language, seed.message)
	}
}
