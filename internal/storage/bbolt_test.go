package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/live-labs/sealstore/internal/crypto"
)

func testEnvelope(seed byte) *crypto.Envelope {
	return &crypto.Envelope{
		EncryptedKey: bytes.Repeat([]byte{seed}, 256),
		Ciphertext:   bytes.Repeat([]byte{seed + 1}, 48),
		Nonce:        bytes.Repeat([]byte{seed + 2}, crypto.NonceSize),
		Tag:          bytes.Repeat([]byte{seed + 3}, crypto.TagSize),
		Digest:       bytes.Repeat([]byte{seed + 4}, crypto.DigestSize),
	}
}

func envelopesEqual(a, b *crypto.Envelope) bool {
	return bytes.Equal(a.EncryptedKey, b.EncryptedKey) &&
		bytes.Equal(a.Ciphertext, b.Ciphertext) &&
		bytes.Equal(a.Nonce, b.Nonce) &&
		bytes.Equal(a.Tag, b.Tag) &&
		bytes.Equal(a.Digest, b.Digest)
}

func openTestStore(t *testing.T) (*BoltStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.sealstore")

	db, err := Open(dbPath, Options{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	return db, dbPath
}

func TestOpenAndInitialize(t *testing.T) {
	db, _ := openTestStore(t)

	initialized, err := db.IsInitialized()
	if err != nil {
		t.Fatalf("Failed to check initialization: %v", err)
	}
	if !initialized {
		t.Error("Database should be initialized")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	db, dbPath := openTestStore(t)

	env := testEnvelope(10)
	if err := db.Put("obj1", env); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	got, createdAt, err := db.Get("obj1")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !envelopesEqual(got, env) {
		t.Error("Envelope fields changed across store round trip")
	}
	if createdAt.IsZero() {
		t.Error("Creation timestamp should be set")
	}

	// Fields must survive a full close and reopen byte-exact.
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}
	reopened, err := Open(dbPath, Options{})
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	defer reopened.Close()

	got, _, err = reopened.Get("obj1")
	if err != nil {
		t.Fatalf("Failed to get after reopen: %v", err)
	}
	if !envelopesEqual(got, env) {
		t.Error("Envelope fields changed across reopen")
	}
}

func TestPutOverwrites(t *testing.T) {
	db, _ := openTestStore(t)

	if err := db.Put("obj1", testEnvelope(10)); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	second := testEnvelope(50)
	if err := db.Put("obj1", second); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	got, _, err := db.Get("obj1")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !envelopesEqual(got, second) {
		t.Error("Get should return the most recently stored envelope")
	}

	infos, err := db.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("Overwrite must not duplicate objects: got %d", len(infos))
	}
}

func TestGetMissing(t *testing.T) {
	db, _ := openTestStore(t)

	if _, _, err := db.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db, _ := openTestStore(t)

	if err := db.Put("obj1", testEnvelope(10)); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	if err := db.Delete("obj1"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, _, err := db.Get("obj1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := db.Delete("obj1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting absent object, got %v", err)
	}
}

func TestList(t *testing.T) {
	db, _ := openTestStore(t)

	if err := db.Put("a", testEnvelope(1)); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	if err := db.Put("b", testEnvelope(2)); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	infos, err := db.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(infos))
	}
	for _, info := range infos {
		if info.Size != 48 {
			t.Errorf("Object %s size: got %d, want 48", info.ID, info.Size)
		}
	}
}

func TestEmptyID(t *testing.T) {
	db, _ := openTestStore(t)

	if err := db.Put("", testEnvelope(1)); err == nil {
		t.Error("Put with empty id should fail")
	}
	if _, _, err := db.Get(""); err == nil {
		t.Error("Get with empty id should fail")
	}
}

func TestVaultID(t *testing.T) {
	db, _ := openTestStore(t)

	if _, err := db.GetVaultID(); err == nil {
		t.Error("Vault ID should not exist before creation")
	}

	vaultID, err := db.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to create vault ID: %v", err)
	}
	if vaultID == "" {
		t.Fatal("Vault ID should not be empty")
	}

	again, err := db.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to get vault ID: %v", err)
	}
	if again != vaultID {
		t.Errorf("Vault ID changed: %s != %s", again, vaultID)
	}
}

func TestCompact(t *testing.T) {
	db, _ := openTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := db.Put(id, testEnvelope(3)); err != nil {
			t.Fatalf("Failed to put: %v", err)
		}
	}
	if err := db.Delete("b"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	if err := db.Compact(); err != nil {
		t.Fatalf("Failed to compact: %v", err)
	}

	// Surviving objects remain readable after compaction.
	for _, id := range []string{"a", "c"} {
		if _, _, err := db.Get(id); err != nil {
			t.Errorf("Object %s lost after compaction: %v", id, err)
		}
	}
	if _, _, err := db.Get("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleted object resurrected by compaction: %v", err)
	}
}
