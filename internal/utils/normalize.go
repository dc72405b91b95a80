package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeName trims surrounding whitespace and lowercases the search term.
// The same function feeds the store lookup, the cache fingerprint and the
// NameLowercase system field, so the three can never disagree.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Fingerprint is the cache key: a hex sha256 of the normalized search term.
func Fingerprint(name string) string {
	sum := sha256.Sum256([]byte(NormalizeName(name)))
	return hex.EncodeToString(sum[:])
}
