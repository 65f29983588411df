package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/live-labs/sealstore/internal/crypto"
)

// MemoryStore keeps objects in memory. Constructed per test case or per
// embedding caller; there is no shared ambient instance.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	env       *crypto.Envelope
	createdAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memObject),
	}
}

// Put inserts or overwrites the object for id. The envelope is deep-copied
// so later caller mutations cannot reach stored state.
func (s *MemoryStore) Put(id string, env *crypto.Envelope) error {
	if err := validateID(id); err != nil {
		return err
	}
	if env == nil {
		return fmt.Errorf("envelope must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[id] = memObject{
		env:       env.Clone(),
		createdAt: time.Now().UTC(),
	}
	return nil
}

// Get retrieves a copy of the envelope and its creation time for id.
func (s *MemoryStore) Get(id string) (*crypto.Envelope, time.Time, error) {
	if err := validateID(id); err != nil {
		return nil, time.Time{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[id]
	if !ok {
		return nil, time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return obj.env.Clone(), obj.createdAt, nil
}

// Delete removes the object for id, failing with ErrNotFound if absent.
func (s *MemoryStore) Delete(id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.objects, id)
	return nil
}

// List returns a summary of every stored object.
func (s *MemoryStore) List() ([]ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]ObjectInfo, 0, len(s.objects))
	for id, obj := range s.objects {
		infos = append(infos, ObjectInfo{
			ID:        id,
			Size:      int64(len(obj.env.Ciphertext)),
			CreatedAt: obj.createdAt,
		})
	}
	return infos, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
