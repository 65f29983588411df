package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/live-labs/sealstore/internal/crypto"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // version, vault id, timestamps
	ObjectsBucket = []byte("objects") // serialized envelope records keyed by object id
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigVaultID  = []byte("vault_id")
)

// Options configures a BoltStore.
type Options struct {
	Logger *logrus.Logger
}

// BoltStore provides BBolt-backed object storage
type BoltStore struct {
	db  *bolt.DB
	log *logrus.Logger
}

// Open opens or creates a sealstore database
func Open(path string, opts Options) (*BoltStore, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &BoltStore{db: db, log: opts.Logger}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure for a new store
func (s *BoltStore) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, ObjectsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *BoltStore) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// Put inserts or overwrites the object for id with the current timestamp.
func (s *BoltStore) Put(id string, env *crypto.Envelope) error {
	if err := validateID(id); err != nil {
		return err
	}

	data, err := encodeRecord(env, time.Now().UTC())
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		objects := tx.Bucket(ObjectsBucket)
		if objects == nil {
			return fmt.Errorf("objects bucket not found")
		}
		if err := objects.Put([]byte(id), data); err != nil {
			return err
		}
		return touchModified(tx)
	})
	if err != nil {
		return fmt.Errorf("failed to store object %s: %w", id, err)
	}

	s.log.WithFields(logrus.Fields{
		"object_id": id,
		"size":      len(env.Ciphertext),
	}).Debug("object stored")

	return nil
}

// Get retrieves the envelope and creation time for id.
func (s *BoltStore) Get(id string) (*crypto.Envelope, time.Time, error) {
	if err := validateID(id); err != nil {
		return nil, time.Time{}, err
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		objects := tx.Bucket(ObjectsBucket)
		if objects == nil {
			return fmt.Errorf("objects bucket not found")
		}
		value := objects.Get([]byte(id))
		if value == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		// Copy, the slice is only valid during the transaction
		data = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	return decodeRecord(data)
}

// Delete removes the object for id, failing with ErrNotFound if absent.
func (s *BoltStore) Delete(id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		objects := tx.Bucket(ObjectsBucket)
		if objects == nil {
			return fmt.Errorf("objects bucket not found")
		}
		if objects.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err := objects.Delete([]byte(id)); err != nil {
			return err
		}
		return touchModified(tx)
	})
}

// List returns a summary of every stored object.
func (s *BoltStore) List() ([]ObjectInfo, error) {
	var infos []ObjectInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		objects := tx.Bucket(ObjectsBucket)
		if objects == nil {
			return fmt.Errorf("objects bucket not found")
		}
		return objects.ForEach(func(k, v []byte) error {
			env, createdAt, err := decodeRecord(v)
			if err != nil {
				return err
			}
			infos = append(infos, ObjectInfo{
				ID:        string(k),
				Size:      int64(len(env.Ciphertext)),
				CreatedAt: createdAt,
			})
			return nil
		})
	})
	return infos, err
}

// GetModified retrieves the last modified timestamp
func (s *BoltStore) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// GetVaultID retrieves the vault ID from the config bucket
func (s *BoltStore) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves the existing vault ID or generates a new one
func (s *BoltStore) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = hex.EncodeToString(b)

	err = s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// Compact creates a compacted copy of the database, removing unused space.
// Useful after deleting objects to reclaim disk space.
func (s *BoltStore) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	s.db, err = bolt.Open(srcPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}

// Path returns the database file path.
func (s *BoltStore) Path() string {
	return s.db.Path()
}

func touchModified(tx *bolt.Tx) error {
	config := tx.Bucket(ConfigBucket)
	if config == nil {
		return fmt.Errorf("config bucket not found")
	}
	now, _ := time.Now().MarshalBinary()
	return config.Put(ConfigModified, now)
}
