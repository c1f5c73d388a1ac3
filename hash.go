package guesslang

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText computes the SHA-256 hash of the text exactly as given.
// Whitespace is significant: it takes part in the script profile.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a result cache key from a text hash and a revision.
// The revision ties cached results to the model data that produced them.
func CacheKey(hash, revision string) string {
	return hash + ":" + revision
}
