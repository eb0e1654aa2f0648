package rulepack

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"oracle/internal/explain"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// DiskCache хранит скомпилированные пакеты правил на диске,
// ключом служит дайджест содержимого файла пакета.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload stores a compiled pack in a serialisable form.
// Regexps are not serialisable, so patterns are stored as source text
// and recompiled on load.
type cachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Name    string
	Prepend bool

	// Parallel slices, one entry per rule, in pack order.
	Languages    []string
	Patterns     []string
	Explanations []string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "packs" для удобства читаемости/очистки.
	return filepath.Join(c.dir, "packs", hexKey+".mp")
}

// Put serializes and writes a compiled pack to the disk cache.
func (c *DiskCache) Put(key Digest, pack *Pack) error {
	if c == nil || pack == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := packToPayload(pack)

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a compiled pack from the disk cache. The second result is
// false on a miss: no entry, wrong schema, or a payload whose patterns
// no longer compile.
func (c *DiskCache) Get(key Digest) (*Pack, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, false, err
	}
	pack := payloadToPack(&payload)
	if pack == nil {
		return nil, false, nil
	}
	return pack, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "packs"))
}

// packToPayload converts a compiled pack into its serialisable form.
func packToPayload(pack *Pack) *cachePayload {
	payload := &cachePayload{
		Schema:       cacheSchemaVersion,
		Name:         pack.Name,
		Prepend:      pack.Prepend,
		Languages:    make([]string, len(pack.Rules)),
		Patterns:     make([]string, len(pack.Rules)),
		Explanations: make([]string, len(pack.Rules)),
	}
	for i, rule := range pack.Rules {
		payload.Languages[i] = rule.Language
		payload.Patterns[i] = rule.Pattern.String()
		payload.Explanations[i] = rule.Explanation
	}
	return payload
}

// payloadToPack recompiles a cached payload (without the source path).
func payloadToPack(payload *cachePayload) *Pack {
	if payload == nil || payload.Schema != cacheSchemaVersion {
		return nil
	}
	if len(payload.Patterns) != len(payload.Languages) || len(payload.Patterns) != len(payload.Explanations) {
		return nil
	}
	pack := &Pack{
		Name:    payload.Name,
		Prepend: payload.Prepend,
	}
	for i := range payload.Patterns {
		re, err := regexp.Compile(payload.Patterns[i])
		if err != nil {
			// Битый кэш трактуем как промах.
			fmt.Fprintf(os.Stderr, "rulepack: cached pattern broke: %v\n", err)
			return nil
		}
		pack.Rules = append(pack.Rules, explain.Rule{
			Language:    payload.Languages[i],
			Pattern:     re,
			Explanation: payload.Explanations[i],
		})
	}
	return pack
}
