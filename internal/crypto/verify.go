package crypto

import "crypto/sha256"

// ComputeDigest returns the SHA-256 digest of data.
func ComputeDigest(data []byte) []byte {
	d := sha256.Sum256(data)
	return d[:]
}

// VerifyDigest recomputes the digest of data and compares it to expected in
// constant time. Pure function; safe to call with digests of any length.
func VerifyDigest(expected, data []byte) bool {
	return ConstantTimeCompare(expected, ComputeDigest(data))
}
