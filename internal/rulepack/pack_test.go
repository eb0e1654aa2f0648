package rulepack

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oracle/internal/explain"
	"oracle/internal/testkit"
)

func writePack(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write pack: %v", err)
	}
	return path
}

const validPack = `
version = 1
name = "team-python"

[[rule]]
language = "python"
pattern = "RecursionError"
explanation = """The call stack ran out.
Look for a recursive call with no base case."""

[[rule]]
language = "python"
pattern = "overflowerror"
ignore_case = true
explanation = "A number grew past what the type can hold."
`

func TestLoadValidPack(t *testing.T) {
	path := writePack(t, t.TempDir(), "python.toml", validPack)

	pack, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pack.Name != "team-python" {
		t.Fatalf("unexpected name: %q", pack.Name)
	}
	if len(pack.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(pack.Rules))
	}
	if pack.Rules[0].Pattern.String() != "RecursionError" {
		t.Fatalf("file order must be preserved, got %q first", pack.Rules[0].Pattern)
	}
	if !pack.Rules[1].Pattern.MatchString("OverflowError: int too large") {
		t.Fatalf("ignore_case rule must match mixed case")
	}
}

func TestLoadDefaultsNameToFile(t *testing.T) {
	path := writePack(t, t.TempDir(), "mypack.toml", `
version = 1

[[rule]]
language = "go"
pattern = "boom"
explanation = "text"
`)
	pack, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pack.Name != "mypack" {
		t.Fatalf("expected name from filename, got %q", pack.Name)
	}
}

func TestLoadRejectsBadPattern(t *testing.T) {
	path := writePack(t, t.TempDir(), "broken.toml", `
version = 1

[[rule]]
language = "go"
pattern = "([unclosed"
explanation = "text"
`)
	_, err := Load(path, nil)
	if err == nil {
		t.Fatalf("expected an error for a bad pattern")
	}
	if !strings.Contains(err.Error(), "broken.toml") || !strings.Contains(err.Error(), "rule 1") {
		t.Fatalf("error must name the file and rule index: %v", err)
	}
}

func TestLoadRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		content string
		field   string
	}{
		{"nolang.toml", "version = 1\n[[rule]]\npattern = \"x\"\nexplanation = \"y\"\n", "language"},
		{"nopattern.toml", "version = 1\n[[rule]]\nlanguage = \"go\"\nexplanation = \"y\"\n", "pattern"},
		{"noexplanation.toml", "version = 1\n[[rule]]\nlanguage = \"go\"\npattern = \"x\"\n", "explanation"},
	}
	dir := t.TempDir()
	for _, tc := range cases {
		path := writePack(t, dir, tc.name, tc.content)
		_, err := Load(path, nil)
		if err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.field) {
			t.Fatalf("%s: error should mention %q, got: %v", tc.name, tc.field, err)
		}
	}
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	dir := t.TempDir()
	for _, content := range []string{
		"version = 2\n[[rule]]\nlanguage = \"go\"\npattern = \"x\"\nexplanation = \"y\"\n",
		"version = -1\n[[rule]]\nlanguage = \"go\"\npattern = \"x\"\nexplanation = \"y\"\n",
	} {
		path := writePack(t, dir, "v.toml", content)
		if _, err := Load(path, nil); err == nil {
			t.Fatalf("expected version error for:\n%s", content)
		}
	}
}

func TestLoadRejectsEmptyPack(t *testing.T) {
	path := writePack(t, t.TempDir(), "empty.toml", "version = 1\nname = \"empty\"\n")
	if _, err := Load(path, nil); err == nil {
		t.Fatalf("expected an error for a pack with no rules")
	}
}

func TestLoadDirLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "b.toml", "version = 1\n[[rule]]\nlanguage = \"go\"\npattern = \"bbb\"\nexplanation = \"b\"\n")
	writePack(t, dir, "a.toml", "version = 1\n[[rule]]\nlanguage = \"go\"\npattern = \"aaa\"\nexplanation = \"a\"\n")
	writePack(t, dir, "notes.txt", "ignored")

	packs, err := LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(packs) != 2 {
		t.Fatalf("expected 2 packs, got %d", len(packs))
	}
	if packs[0].Rules[0].Pattern.String() != "aaa" {
		t.Fatalf("packs must load in lexical order, got %q first", packs[0].Rules[0].Pattern)
	}
}

func TestMergeAppendsAfterBase(t *testing.T) {
	base := explain.NewTable(
		explain.MustRule("go", `boom`, "builtin"),
	)
	pack := &Pack{
		Name:  "extra",
		Rules: []explain.Rule{explain.MustRule("go", `boom`, "from pack")},
	}

	merged := Merge(base, pack)
	if err := testkit.CheckTableInvariants(merged); err != nil {
		t.Fatalf("merged table invariants: %v", err)
	}

	resolver := explain.NewResolver(merged)
	text, matched := resolver.Resolve("boom", "go")
	if !matched || text != "builtin" {
		t.Fatalf("builtin rule must stay in front, got %q", text)
	}
}

func TestMergePrependWins(t *testing.T) {
	base := explain.NewTable(
		explain.MustRule("go", `boom`, "builtin"),
	)
	pack := &Pack{
		Name:    "override",
		Prepend: true,
		Rules:   []explain.Rule{explain.MustRule("go", `boom`, "from pack")},
	}

	resolver := explain.NewResolver(Merge(base, pack))
	text, matched := resolver.Resolve("boom", "go")
	if !matched || text != "from pack" {
		t.Fatalf("prepended pack must win over builtins, got %q", text)
	}
}

func TestTableDigestStable(t *testing.T) {
	table := explain.NewTable(
		explain.MustRule("go", `boom`, "a"),
		explain.MustRule("go", `bang`, "b"),
	)
	first := TableDigest(table)
	if first.IsZero() {
		t.Fatalf("digest must not be zero")
	}
	if second := TableDigest(table); second != first {
		t.Fatalf("digest changed between calls")
	}

	reordered := explain.NewTable(
		explain.MustRule("go", `bang`, "b"),
		explain.MustRule("go", `boom`, "a"),
	)
	if TableDigest(reordered) == first {
		t.Fatalf("rule order must affect the digest")
	}
}
