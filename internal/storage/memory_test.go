package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BoltStore)(nil)
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	env := testEnvelope(20)
	if err := s.Put("obj1", env); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	got, createdAt, err := s.Get("obj1")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !envelopesEqual(got, env) {
		t.Error("Envelope fields changed across round trip")
	}
	if createdAt.IsZero() {
		t.Error("Creation timestamp should be set")
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemoryStore()

	env := testEnvelope(20)
	if err := s.Put("obj1", env); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	// Mutating the caller's envelope after Put must not reach stored state.
	env.Ciphertext[0] ^= 0xff

	got, _, err := s.Get("obj1")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got.Ciphertext[0] == env.Ciphertext[0] {
		t.Error("Stored envelope aliases the caller's slice")
	}

	// Mutating a Get result must not affect subsequent reads.
	got.Tag[0] ^= 0xff
	again, _, err := s.Get("obj1")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if again.Tag[0] == got.Tag[0] {
		t.Error("Get result aliases stored state")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()

	if _, _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := s.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Put("obj1", testEnvelope(1)); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	second := testEnvelope(90)
	if err := s.Put("obj1", second); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	got, _, err := s.Get("obj1")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !envelopesEqual(got, second) {
		t.Error("Get should return the most recently stored envelope")
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("obj-%d", n)
			for j := 0; j < 20; j++ {
				if err := s.Put(id, testEnvelope(byte(j))); err != nil {
					t.Errorf("Put failed: %v", err)
					return
				}
				if _, _, err := s.Get(id); err != nil {
					t.Errorf("Get failed: %v", err)
					return
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Concurrent access deadlocked")
	}

	infos, err := s.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(infos) != 16 {
		t.Errorf("Expected 16 objects, got %d", len(infos))
	}
}
