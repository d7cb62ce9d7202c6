// Package hash provides the canonical-JSON encoder and content hasher that
// every digest, fingerprint, and integrity field in the governance data
// model is built from: hash(canonical(x)) is the sole identity function
// used across contract materialization, digesting, diffing, and lockfiles.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// StringHash computes the 64-character lowercase hex SHA-256 digest of a
// string.
func StringHash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// BytesHash computes the 64-character lowercase hex SHA-256 digest of a
// byte slice.
func BytesHash(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}
