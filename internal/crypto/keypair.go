package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/binary"
	"encoding/pem"
	"fmt"
	"os"
)

const (
	privateKeyPEMType = "RSA PRIVATE KEY"
	publicKeyPEMType  = "PUBLIC KEY"
	sealedKeyPEMType  = "SEALSTORE SEALED PRIVATE KEY"
)

// Keypair holds a freshly generated or loaded RSA keypair. The private half
// stays inside the holder's trust boundary; the public half is shareable.
type Keypair struct {
	private *rsa.PrivateKey
}

// GenerateKeypair produces a fresh RSA-2048 keypair from crypto/rand.
// Primitive failure surfaces as ErrKeyGeneration, never silently.
func GenerateKeypair() (*Keypair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &Keypair{private: priv}, nil
}

// Private returns the private key.
func (k *Keypair) Private() *rsa.PrivateKey {
	return k.private
}

// Public returns the shareable public key.
func (k *Keypair) Public() *rsa.PublicKey {
	return &k.private.PublicKey
}

// EncodePrivatePEM encodes the private key as a PKCS#1 PEM block.
func (k *Keypair) EncodePrivatePEM() []byte {
	return EncodePrivateKeyPEM(k.private)
}

// EncodePrivateKeyPEM encodes an RSA private key as a PKCS#1 PEM block.
func EncodePrivateKeyPEM(priv *rsa.PrivateKey) []byte {
	block := &pem.Block{
		Type:  privateKeyPEMType,
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	}
	return pem.EncodeToMemory(block)
}

// EncodePublicPEM encodes the public key as a PKIX PEM block.
func (k *Keypair) EncodePublicPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(k.Public())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	block := &pem.Block{
		Type:  publicKeyPEMType,
		Bytes: der,
	}
	return pem.EncodeToMemory(block), nil
}

// ParsePrivateKeyPEM parses an unsealed PKCS#1 private key PEM block.
func ParsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != privateKeyPEMType {
		return nil, fmt.Errorf("failed to decode PEM block containing private key")
	}
	return x509.ParsePKCS1PrivateKey(block.Bytes)
}

// ParsePublicKeyPEM parses a PKIX public key PEM block.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != publicKeyPEMType {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}
	return rsaPub, nil
}

// SealPrivatePEM encrypts a private key PEM under a passphrase. The result
// is a PEM block whose payload is salt || iterations || nonce+ciphertext.
func SealPrivatePEM(keyPEM, passphrase []byte) ([]byte, error) {
	kdf, err := NewKDF()
	if err != nil {
		return nil, err
	}

	key := kdf.DeriveKey(passphrase)
	defer ClearBytes(key)

	enc := NewEncryptor(key)
	ciphertext, err := enc.Encrypt(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to seal private key: %w", err)
	}

	payload := make([]byte, 0, SaltSize+4+len(ciphertext))
	payload = append(payload, kdf.Salt...)
	payload = binary.BigEndian.AppendUint32(payload, uint32(kdf.Iterations))
	payload = append(payload, ciphertext...)

	block := &pem.Block{
		Type:  sealedKeyPEMType,
		Bytes: payload,
	}
	return pem.EncodeToMemory(block), nil
}

// IsSealedPrivatePEM reports whether data holds a passphrase-sealed key.
func IsSealedPrivatePEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil && block.Type == sealedKeyPEMType
}

// OpenPrivatePEM parses a private key from data, unsealing it with the
// passphrase if needed. A wrong passphrase yields ErrWrongPassphrase.
func OpenPrivatePEM(data, passphrase []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block containing private key")
	}

	switch block.Type {
	case privateKeyPEMType:
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case sealedKeyPEMType:
		if len(block.Bytes) < SaltSize+4 {
			return nil, fmt.Errorf("sealed private key payload too short")
		}
		kdf := &KDF{
			Salt:       block.Bytes[:SaltSize],
			Iterations: int(binary.BigEndian.Uint32(block.Bytes[SaltSize : SaltSize+4])),
		}

		key := kdf.DeriveKey(passphrase)
		defer ClearBytes(key)

		enc := NewEncryptor(key)
		keyPEM, err := enc.Decrypt(block.Bytes[SaltSize+4:])
		if err != nil {
			return nil, ErrWrongPassphrase
		}
		defer ClearBytes(keyPEM)

		return ParsePrivateKeyPEM(keyPEM)
	default:
		return nil, fmt.Errorf("unexpected PEM block type %q", block.Type)
	}
}

// LoadPrivateKey loads a private key from disk, unsealing with passphrase
// if the file holds a sealed key.
func LoadPrivateKey(path string, passphrase []byte) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return OpenPrivatePEM(data, passphrase)
}

// LoadPublicKey loads a PKIX public key from disk.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePublicKeyPEM(data)
}
