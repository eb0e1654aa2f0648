package rulepack

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"oracle/internal/explain"
)

// packSchemaVersion is the pack format this build understands.
const packSchemaVersion uint16 = 1

// Pack is a parsed rule pack: an ordered list of compiled rules loaded
// from one TOML file.
type Pack struct {
	Name    string
	Path    string
	Prepend bool
	Rules   []explain.Rule
}

type packFile struct {
	Version int        `toml:"version"`
	Name    string     `toml:"name"`
	Prepend bool       `toml:"prepend"`
	Rule    []ruleSpec `toml:"rule"`
}

type ruleSpec struct {
	Language    string `toml:"language"`
	Pattern     string `toml:"pattern"`
	IgnoreCase  bool   `toml:"ignore_case"`
	Explanation string `toml:"explanation"`
}

// Load parses and validates one rule pack. Rule order in the file is
// preserved. With a non-nil cache, a previously compiled pack with the
// same content is reused instead of being parsed again.
func Load(path string, cache *DiskCache) (*Pack, error) {
	if cache != nil {
		key, err := FileDigest(path)
		if err != nil {
			return nil, err
		}
		if pack, ok, err := cache.Get(key); err == nil && ok {
			pack.Path = path
			return pack, nil
		}
		pack, err := parsePack(path)
		if err != nil {
			return nil, err
		}
		if err := cache.Put(key, pack); err != nil {
			// Кэш не критичен: просто работаем без него.
			fmt.Fprintf(os.Stderr, "rulepack: cache write failed: %v\n", err)
		}
		return pack, nil
	}
	return parsePack(path)
}

func parsePack(path string) (*Pack, error) {
	var cfg packFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	version, err := safecast.Conv[uint16](cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid version: %w", path, err)
	}
	if version != packSchemaVersion {
		return nil, fmt.Errorf("%s: unsupported pack version %d (want %d)", path, version, packSchemaVersion)
	}
	if !meta.IsDefined("rule") || len(cfg.Rule) == 0 {
		return nil, fmt.Errorf("%s: pack declares no [[rule]] entries", path)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	rules := make([]explain.Rule, 0, len(cfg.Rule))
	for i, spec := range cfg.Rule {
		rule, err := compileRule(path, i, spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return &Pack{
		Name:    name,
		Path:    path,
		Prepend: cfg.Prepend,
		Rules:   rules,
	}, nil
}

func compileRule(path string, index int, spec ruleSpec) (explain.Rule, error) {
	if strings.TrimSpace(spec.Language) == "" {
		return explain.Rule{}, fmt.Errorf("%s: rule %d: language is required", path, index+1)
	}
	if spec.Pattern == "" {
		return explain.Rule{}, fmt.Errorf("%s: rule %d: pattern is required", path, index+1)
	}
	if strings.TrimSpace(spec.Explanation) == "" {
		return explain.Rule{}, fmt.Errorf("%s: rule %d: explanation is required", path, index+1)
	}
	pattern := spec.Pattern
	if spec.IgnoreCase {
		pattern = "(?i:" + pattern + ")"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return explain.Rule{}, fmt.Errorf("%s: rule %d: pattern: %w", path, index+1, err)
	}
	return explain.Rule{
		Language:    spec.Language,
		Pattern:     re,
		Explanation: spec.Explanation,
	}, nil
}

// LoadDir loads every *.toml pack in dir in lexical order.
func LoadDir(dir string, cache *DiskCache) ([]*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	// Лексический порядок файлов фиксирует порядок правил.
	sort.Strings(paths)

	packs := make([]*Pack, 0, len(paths))
	for _, path := range paths {
		pack, err := Load(path, cache)
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

// Merge layers packs onto a base table. Pack rules are appended after
// the base rules in pack order; a pack with prepend = true goes in
// front of everything instead, so its rules win over the builtins.
func Merge(base *explain.Table, packs ...*Pack) *explain.Table {
	var front, back []explain.Rule
	for _, pack := range packs {
		if pack == nil {
			continue
		}
		if pack.Prepend {
			front = append(front, pack.Rules...)
		} else {
			back = append(back, pack.Rules...)
		}
	}
	merged := make([]explain.Rule, 0, len(front)+base.Len()+len(back))
	merged = append(merged, front...)
	merged = append(merged, base.Rules()...)
	merged = append(merged, back...)
	return explain.NewTable(merged...)
}
