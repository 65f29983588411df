package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// Envelope is the unit of hybrid encryption: the symmetric key wrapped for
// the recipient, the AEAD output split into ciphertext, nonce and tag, plus
// an independent digest of the original plaintext. Treat as a value type;
// envelopes are never mutated after Seal.
type Envelope struct {
	EncryptedKey []byte // symmetric key wrapped with RSA-OAEP (SHA-256)
	Ciphertext   []byte
	Nonce        []byte
	Tag          []byte
	Digest       []byte // SHA-256 of the original plaintext
}

// Clone returns a deep copy of the envelope.
func (e *Envelope) Clone() *Envelope {
	if e == nil {
		return nil
	}
	return &Envelope{
		EncryptedKey: append([]byte(nil), e.EncryptedKey...),
		Ciphertext:   append([]byte(nil), e.Ciphertext...),
		Nonce:        append([]byte(nil), e.Nonce...),
		Tag:          append([]byte(nil), e.Tag...),
		Digest:       append([]byte(nil), e.Digest...),
	}
}

func (e *Envelope) validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil envelope", ErrInvalidEnvelope)
	}
	if len(e.EncryptedKey) == 0 {
		return fmt.Errorf("%w: missing encrypted key", ErrInvalidEnvelope)
	}
	if len(e.Nonce) != NonceSize {
		return fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrInvalidEnvelope, NonceSize, len(e.Nonce))
	}
	if len(e.Tag) != TagSize {
		return fmt.Errorf("%w: tag must be %d bytes, got %d", ErrInvalidEnvelope, TagSize, len(e.Tag))
	}
	if len(e.Digest) != DigestSize {
		return fmt.Errorf("%w: digest must be %d bytes, got %d", ErrInvalidEnvelope, DigestSize, len(e.Digest))
	}
	return nil
}

// Seal encrypts plaintext for the holder of pub. A fresh symmetric key and
// nonce are generated per call; the key is wiped before Seal returns.
func Seal(plaintext []byte, pub *rsa.PublicKey) (*Envelope, error) {
	symKey, err := GenerateRandom(KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate symmetric key: %w", err)
	}
	defer ClearBytes(symKey)

	nonce, err := GenerateRandom(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	block, err := aes.NewCipher(symKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, symKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap symmetric key: %w", err)
	}

	return &Envelope{
		EncryptedKey: wrapped,
		Ciphertext:   sealed[:split:split],
		Nonce:        nonce,
		Tag:          sealed[split:],
		Digest:       ComputeDigest(plaintext),
	}, nil
}

// Open recovers the plaintext from an envelope. The tag is verified before
// any plaintext is returned; an envelope that fails verification yields
// ErrAuthentication and nothing else. Open does not check Digest: that is
// the caller's explicit verification step after a successful Open.
func Open(env *Envelope, priv *rsa.PrivateKey) ([]byte, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}

	symKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, env.EncryptedKey, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnwrap, err)
	}
	defer ClearBytes(symKey)

	block, err := aes.NewCipher(symKey)
	if err != nil {
		// Wrong key length means the unwrap produced garbage.
		return nil, fmt.Errorf("%w: %v", ErrKeyUnwrap, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+len(env.Tag))
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	plaintext, err := gcm.Open(nil, env.Nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}
