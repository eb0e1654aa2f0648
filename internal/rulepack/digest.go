package rulepack

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"oracle/internal/explain"
)

// Digest is a stable content fingerprint (SHA-256).
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

// FileDigest hashes a pack file's raw bytes. Used as the disk cache key
// so any edit to the file invalidates its cached compilation.
func FileDigest(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, err
	}
	defer func() {
		_ = f.Close()
	}()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// TableDigest fingerprints a compiled rule table: same rules in the
// same order give the same digest regardless of where they came from.
func TableDigest(t *explain.Table) Digest {
	h := sha256.New()
	for _, rule := range t.Rules() {
		// NUL-разделители исключают склейку соседних полей.
		h.Write([]byte(rule.Language))
		h.Write([]byte{0})
		h.Write([]byte(rule.Pattern.String()))
		h.Write([]byte{0})
		h.Write([]byte(rule.Explanation))
		h.Write([]byte{0})
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
