package explain

import (
	"strings"
	"testing"
)

func TestResolveReturnsRuleExplanation(t *testing.T) {
	table := NewTable(
		MustRule("python", `NameError`, "name explanation"),
		MustRule("python", `TypeError`, "type explanation"),
	)
	resolver := NewResolver(table)

	text, matched := resolver.Resolve("TypeError: bad things", "python")
	if !matched {
		t.Fatalf("expected a rule match")
	}
	if text != "type explanation" {
		t.Fatalf("unexpected explanation: %q", text)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	table := NewTable(
		MustRule("python", `boom`, "first"),
		MustRule("python", `boom`, "second"),
	)
	resolver := NewResolver(table)

	text, matched := resolver.Resolve("a boom happened", "python")
	if !matched {
		t.Fatalf("expected a match")
	}
	if text != "first" {
		t.Fatalf("earlier-declared rule must win, got %q", text)
	}
}

func TestResolveLanguageExactEquality(t *testing.T) {
	table := NewTable(
		MustRule("python", `boom`, "python explanation"),
	)
	resolver := NewResolver(table)

	for _, lang := range []string{"Python", "PYTHON", "python3", " python"} {
		if _, matched := resolver.Resolve("boom", lang); matched {
			t.Fatalf("language %q must not match rule language \"python\"", lang)
		}
	}
	if _, matched := resolver.Resolve("boom", "python"); !matched {
		t.Fatalf("exact language must match")
	}
}

func TestResolveContainmentNotAnchored(t *testing.T) {
	table := NewTable(
		MustRule("go", `undefined: (\S+)`, "undefined explanation"),
	)
	resolver := NewResolver(table)

	message := "main.go:10:2: undefined: frobnicate (and more context)"
	if _, matched := resolver.Resolve(message, "go"); !matched {
		t.Fatalf("pattern must match anywhere inside the message")
	}
}

func TestResolveCaseInsensitivePattern(t *testing.T) {
	table := NewTable(
		MustRule("python", `(?i)indentationerror`, "indent explanation"),
	)
	resolver := NewResolver(table)

	if _, matched := resolver.Resolve("IndentationError: unexpected indent", "python"); !matched {
		t.Fatalf("case-insensitive pattern must match")
	}
}

func TestResolveCaptureGroupsUnused(t *testing.T) {
	table := NewTable(
		MustRule("python", `NameError: (.+) is not defined`, "capture explanation"),
	)
	resolver := NewResolver(table)

	// Захваченные группы никуда не подставляются.
	text, matched := resolver.Resolve("NameError: x is not defined", "python")
	if !matched {
		t.Fatalf("expected a match")
	}
	if text != "capture explanation" {
		t.Fatalf("explanation must be returned as declared, got %q", text)
	}
}

func TestResolveFallbackEchoesMessage(t *testing.T) {
	resolver := NewResolver(NewTable())

	messages := []string{
		"some unrecognized message",
		"",
		"line one\nline two",
		"unicode: ошибка 错误 🤖",
		strings.Repeat("very long ", 500),
	}
	for _, message := range messages {
		text, matched := resolver.Resolve(message, "ruby")
		if matched {
			t.Fatalf("empty table cannot match %q", message)
		}
		if !strings.Contains(text, message) {
			t.Fatalf("fallback must contain the message verbatim, message=%q", message)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	resolver := NewResolver(Builtin())

	first := resolver.Explain("NameError: x is not defined", "python")
	for range 5 {
		if got := resolver.Explain("NameError: x is not defined", "python"); got != first {
			t.Fatalf("repeated resolve changed output")
		}
	}
	fallbackFirst := resolver.Explain("no such thing", "ruby")
	if got := resolver.Explain("no such thing", "ruby"); got != fallbackFirst {
		t.Fatalf("repeated fallback resolve changed output")
	}
}

func TestFallbackShape(t *testing.T) {
	text := Fallback("some unrecognized message")

	if !strings.Contains(text, "> some unrecognized message") {
		t.Fatalf("fallback must quote the message, got:\n%s", text)
	}
	if !strings.Contains(text, fallbackIntro) {
		t.Fatalf("fallback must open with the fixed intro")
	}
	if strings.Count(text, "\n- ") != len(fallbackSuggestions) {
		t.Fatalf("fallback must list all %d suggestions:\n%s", len(fallbackSuggestions), text)
	}
}

func TestTableImmutable(t *testing.T) {
	rules := []Rule{
		MustRule("python", `boom`, "explanation"),
	}
	table := NewTable(rules...)

	// Мутации входного и выходного срезов не должны влиять на таблицу.
	rules[0] = MustRule("python", `never`, "changed")
	got := table.Rules()
	if got[0].Explanation != "explanation" {
		t.Fatalf("table picked up mutation of the input slice")
	}
	got[0] = MustRule("python", `never`, "changed again")
	if table.Rules()[0].Explanation != "explanation" {
		t.Fatalf("table picked up mutation of the returned slice")
	}
}

func TestNewRuleRejectsBadPattern(t *testing.T) {
	if _, err := NewRule("python", `([unclosed`, "text"); err == nil {
		t.Fatalf("expected an error for an invalid pattern")
	}
}
