// Package crypto implements the hybrid-encryption envelope for sealstore.
//
// Each object is encrypted with AES-256-GCM under a fresh random symmetric
// key, and that key is wrapped with RSA-OAEP (SHA-256) for the recipient:
//   - 32-byte symmetric key, generated per Seal call
//   - 12-byte random nonce per Seal call (safe since the key is never reused)
//   - 16-byte GCM tag kept as a separate envelope field
//
// Alongside the AEAD tag, every envelope carries a SHA-256 digest of the
// original plaintext. The two checks are independent: the tag authenticates
// the ciphertext, the digest detects the case where decryption is
// structurally valid but the recovered content does not match what was
// originally hashed. Open never checks the digest; callers run VerifyDigest
// after a successful Open.
//
// Private keys at rest can be sealed under a passphrase using
// PBKDF2-HMAC-SHA256 (210,000 iterations, 32-byte random salt) and
// AES-256-GCM.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Seal and Open wipe the symmetric key on every exit path
package crypto
