package core

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/sealstore/internal/crypto"
	"github.com/live-labs/sealstore/internal/ledger"
	"github.com/live-labs/sealstore/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	// ErrIntegrity means the envelope decrypted cleanly but the recovered
	// plaintext does not match the stored content digest. The tag verified,
	// so this points at a corrupted digest or an encoding bug rather than
	// in-flight tampering.
	ErrIntegrity = errors.New("content digest mismatch")

	// ErrInputUnavailable means the plaintext source could not be read.
	ErrInputUnavailable = errors.New("plaintext source unavailable")

	// ErrNotInitialized means the vault database has not been created yet.
	ErrNotInitialized = errors.New("vault not initialized")
)

// Vault orchestrates the encrypt-store-audit lifecycle over explicitly
// constructed collaborators. It keeps no state of its own between calls.
type Vault struct {
	store  storage.Store
	ledger ledger.Ledger
	log    *logrus.Logger
}

// Options configures a Vault.
type Options struct {
	Logger *logrus.Logger
}

// New creates a Vault over the given store and ledger.
func New(store storage.Store, led ledger.Ledger, opts Options) *Vault {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	return &Vault{
		store:  store,
		ledger: led,
		log:    opts.Logger,
	}
}

// Put encrypts plaintext for the holder of pub, stores the envelope under
// objectID and records the upload.
func (v *Vault) Put(actor, objectID string, plaintext []byte, pub *rsa.PublicKey) error {
	env, err := crypto.Seal(plaintext, pub)
	if err != nil {
		return fmt.Errorf("failed to seal object %s: %w", objectID, err)
	}

	if err := v.store.Put(objectID, env); err != nil {
		return err
	}

	v.ledger.Record(actor, objectID, ledger.ActionUpload)
	v.log.WithFields(logrus.Fields{
		"actor":     actor,
		"object_id": objectID,
	}).Debug("object uploaded")

	return nil
}

// PutFile reads plaintext from path and stores it under objectID. A source
// that cannot be read fails with ErrInputUnavailable.
func (v *Vault) PutFile(actor, objectID, path string, pub *rsa.PublicKey) error {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	defer crypto.ClearBytes(plaintext)

	return v.Put(actor, objectID, plaintext, pub)
}

// Get retrieves, decrypts and verifies the object stored under objectID.
//
// Failure modes are terminal and distinguishable: storage.ErrNotFound on
// retrieve, crypto.ErrKeyUnwrap or crypto.ErrAuthentication on decrypt,
// ErrIntegrity when the digest does not match the recovered plaintext.
// The download is recorded once decryption succeeds, regardless of the
// verification outcome.
func (v *Vault) Get(actor, objectID string, priv *rsa.PrivateKey) ([]byte, error) {
	env, _, err := v.store.Get(objectID)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.Open(env, priv)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", objectID, err)
	}

	v.ledger.Record(actor, objectID, ledger.ActionDownload)

	if !crypto.VerifyDigest(env.Digest, plaintext) {
		crypto.ClearBytes(plaintext)
		return nil, fmt.Errorf("%w: object %s", ErrIntegrity, objectID)
	}

	v.log.WithFields(logrus.Fields{
		"actor":     actor,
		"object_id": objectID,
	}).Debug("object downloaded and verified")

	return plaintext, nil
}

// Remove deletes the object stored under objectID and records the deletion.
func (v *Vault) Remove(actor, objectID string) error {
	if err := v.store.Delete(objectID); err != nil {
		return err
	}
	v.ledger.Record(actor, objectID, ledger.ActionDelete)
	return nil
}

// List returns a summary of stored objects.
func (v *Vault) List() ([]storage.ObjectInfo, error) {
	return v.store.List()
}
