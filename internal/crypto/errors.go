package crypto

import "errors"

var (
	// ErrKeyGeneration is returned when the underlying primitive fails to
	// produce a keypair, e.g. the entropy source is exhausted.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrKeyUnwrap is returned when the wrapped symmetric key cannot be
	// recovered: the key ciphertext is malformed or the private key does
	// not correspond to the recipient.
	ErrKeyUnwrap = errors.New("key unwrap failed")

	// ErrAuthentication is returned when the AEAD tag does not verify.
	// No plaintext is ever returned alongside this error.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInvalidEnvelope is returned when an envelope is structurally
	// incomplete or has fields of the wrong size.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrWrongPassphrase is returned when a sealed private key cannot be
	// opened with the supplied passphrase.
	ErrWrongPassphrase = errors.New("wrong passphrase")
)
