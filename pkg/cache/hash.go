package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives a namespaced cache key from arbitrary components.
// Layout keys hash the normalized word list together with the layout
// parameters; artifact keys hash the document together with the render
// options. Components are JSON-encoded first so the key is stable across
// runs for the same inputs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the SHA-256 digest of data as a 64-character hex string.
// The full digest is kept rather than truncated so distinct word lists
// cannot collide on a key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
