package rulepack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"oracle/internal/explain"
)

func testCache(t *testing.T) *DiskCache {
	t.Helper()
	return &DiskCache{dir: t.TempDir()}
}

func TestCachePutGetRoundTrip(t *testing.T) {
	cache := testCache(t)
	pack := &Pack{
		Name:    "team",
		Prepend: true,
		Rules: []explain.Rule{
			explain.MustRule("python", `RecursionError`, "The call stack ran out."),
		},
	}
	var key Digest
	key[0] = 0xAB

	if err := cache.Put(key, pack); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if got.Name != "team" || !got.Prepend || len(got.Rules) != 1 {
		t.Fatalf("unexpected pack from cache: %+v", got)
	}
	rule := got.Rules[0]
	if rule.Language != "python" || rule.Explanation != "The call stack ran out." {
		t.Fatalf("unexpected rule: %+v", rule)
	}
	// Паттерн должен быть перекомпилирован и работать.
	if !rule.Pattern.MatchString("RecursionError: maximum recursion depth exceeded") {
		t.Fatalf("cached pattern does not match")
	}
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	cache := testCache(t)
	var key Digest
	key[0] = 0x01

	_, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss on an empty cache")
	}
}

func TestCacheRejectsWrongSchema(t *testing.T) {
	cache := testCache(t)
	var key Digest
	key[0] = 0x02

	// Запись с чужой схемой имитирует кэш от другой версии бинаря.
	payload := &cachePayload{
		Schema:       cacheSchemaVersion + 1,
		Name:         "stale",
		Languages:    []string{"go"},
		Patterns:     []string{"undefined"},
		Explanations: []string{"old text"},
	}
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("wrong schema must be treated as a miss")
	}
}

func TestCacheDropAll(t *testing.T) {
	cache := testCache(t)
	pack := &Pack{
		Name:  "team",
		Rules: []explain.Rule{explain.MustRule("go", `undefined`, "No such identifier.")},
	}
	var key Digest
	key[0] = 0x03

	if err := cache.Put(key, pack); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatalf("expected a miss after DropAll")
	}
}

func TestLoadPrefersCachedPack(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "python.toml", validPack)
	cache := testCache(t)

	key, err := FileDigest(path)
	if err != nil {
		t.Fatalf("FileDigest: %v", err)
	}
	planted := &Pack{
		Name:  "from-cache",
		Rules: []explain.Rule{explain.MustRule("python", `RecursionError`, "Planted entry.")},
	}
	if err := cache.Put(key, planted); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := Load(path, cache)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "from-cache" {
		t.Fatalf("expected the cached pack, got %q", got.Name)
	}
	if got.Path != path {
		t.Fatalf("cache hit must restore the source path, got %q", got.Path)
	}
}

func TestLoadPopulatesCache(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "python.toml", validPack)
	cache := testCache(t)

	if _, err := Load(path, cache); err != nil {
		t.Fatalf("Load: %v", err)
	}

	key, err := FileDigest(path)
	if err != nil {
		t.Fatalf("FileDigest: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("Load must write the parsed pack into the cache")
	}
	if got.Name != "team-python" {
		t.Fatalf("unexpected cached pack: %q", got.Name)
	}
}
