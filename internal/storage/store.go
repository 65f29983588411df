package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/live-labs/sealstore/internal/crypto"
)

// ErrNotFound is returned by Get and Delete for an unknown object id.
var ErrNotFound = errors.New("object not found")

// ObjectInfo summarizes a stored object for listings.
type ObjectInfo struct {
	ID        string
	Size      int64 // ciphertext size in bytes
	CreatedAt time.Time
}

// Store is keyed storage of envelopes plus creation metadata.
// Implementations must be safe for concurrent use; a Get must never observe
// a partially written object. Put overwrites by id, last write wins.
type Store interface {
	Put(id string, env *crypto.Envelope) error
	Get(id string) (*crypto.Envelope, time.Time, error)
	Delete(id string) error
	List() ([]ObjectInfo, error)
	Close() error
}

// record is the serialized form of a stored object. All envelope fields are
// carried byte-exact; encoding/json base64-encodes []byte losslessly.
type record struct {
	EncryptedKey []byte    `json:"encrypted_key"`
	Ciphertext   []byte    `json:"ciphertext"`
	Nonce        []byte    `json:"nonce"`
	Tag          []byte    `json:"tag"`
	Digest       []byte    `json:"digest"`
	CreatedAt    time.Time `json:"created_at"`
}

func encodeRecord(env *crypto.Envelope, createdAt time.Time) ([]byte, error) {
	data, err := json.Marshal(record{
		EncryptedKey: env.EncryptedKey,
		Ciphertext:   env.Ciphertext,
		Nonce:        env.Nonce,
		Tag:          env.Tag,
		Digest:       env.Digest,
		CreatedAt:    createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode object record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*crypto.Envelope, time.Time, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode object record: %w", err)
	}
	env := &crypto.Envelope{
		EncryptedKey: rec.EncryptedKey,
		Ciphertext:   rec.Ciphertext,
		Nonce:        rec.Nonce,
		Tag:          rec.Tag,
		Digest:       rec.Digest,
	}
	return env, rec.CreatedAt, nil
}

func validateID(id string) error {
	if id == "" {
		return errors.New("object id must not be empty")
	}
	return nil
}
