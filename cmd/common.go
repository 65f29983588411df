package cmd

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/live-labs/sealstore/internal/core"
	"github.com/live-labs/sealstore/internal/crypto"
	"github.com/live-labs/sealstore/internal/keyring"
	"github.com/live-labs/sealstore/internal/ledger"
	"github.com/live-labs/sealstore/internal/storage"
	"github.com/sirupsen/logrus"
)

const (
	VaultDir       = ".sealstore"
	DBFile         = "objects.db"
	AuditFile      = "audit.jsonl"
	PrivateKeyFile = "key.pem"
	PublicKeyFile  = "key.pub"

	DirPermSecure  = 0700
	FilePermSecure = 0600
)

func dbPath() string         { return filepath.Join(VaultDir, DBFile) }
func auditPath() string      { return filepath.Join(VaultDir, AuditFile) }
func privateKeyPath() string { return filepath.Join(VaultDir, PrivateKeyFile) }
func publicKeyPath() string  { return filepath.Join(VaultDir, PublicKeyFile) }

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if os.Getenv("SEALSTORE_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// OpenStore opens the vault database and verifies it has been initialized
func OpenStore() (*storage.BoltStore, error) {
	if _, err := os.Stat(dbPath()); err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrNotInitialized
		}
		return nil, err
	}

	store, err := storage.Open(dbPath(), storage.Options{Logger: newLogger()})
	if err != nil {
		return nil, err
	}

	initialized, err := store.IsInitialized()
	if err != nil {
		store.Close()
		return nil, err
	}
	if !initialized {
		store.Close()
		return nil, core.ErrNotInitialized
	}

	return store, nil
}

// OpenVault opens the store and wires it to the access ledger
func OpenVault() (*core.Vault, *storage.BoltStore, error) {
	store, err := OpenStore()
	if err != nil {
		return nil, nil, err
	}

	log := newLogger()
	led := ledger.NewFileLedger(auditPath(), ledger.Options{Logger: log})
	return core.New(store, led, core.Options{Logger: log}), store, nil
}

// Actor returns the identity recorded in the access trail:
// SEALSTORE_ACTOR, then the OS username, then "unknown".
func Actor() string {
	if actor := os.Getenv("SEALSTORE_ACTOR"); actor != "" {
		return actor
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

// GetPassphrase retrieves the private-key passphrase: environment first,
// then the OS keyring, then an interactive prompt.
// The caller is responsible for calling crypto.ClearBytes on the result.
func GetPassphrase(prompt, vaultID string) ([]byte, error) {
	if passphrase := core.GetPassphraseFromEnv(); passphrase != nil {
		return passphrase, nil
	}

	if vaultID != "" {
		if stored, err := keyring.GetPassphrase(vaultID); err == nil {
			return []byte(stored), nil
		}
	}

	passphrase, err := core.ReadPassphrase(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}

// GetPassphraseOrExit is like GetPassphrase but exits on error
func GetPassphraseOrExit(prompt, vaultID string) []byte {
	passphrase, err := GetPassphrase(prompt, vaultID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return passphrase
}

// LoadPrivateKeyInteractive loads the private key, prompting for the
// passphrase only when the key file is sealed.
func LoadPrivateKeyInteractive(store *storage.BoltStore) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(privateKeyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no private key found, run 'sealstore keygen' first")
		}
		return nil, err
	}

	if !crypto.IsSealedPrivatePEM(data) {
		return crypto.OpenPrivatePEM(data, nil)
	}

	vaultID := ""
	if store != nil {
		vaultID, _ = store.GetVaultID()
	}

	passphrase, err := GetPassphrase("Enter passphrase: ", vaultID)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(passphrase)

	return crypto.OpenPrivatePEM(data, passphrase)
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: vault not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'sealstore init' first\n")
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	case errors.Is(err, crypto.ErrKeyUnwrap):
		fmt.Fprintf(os.Stderr, "Error: could not unwrap the symmetric key\n")
		fmt.Fprintf(os.Stderr, "The private key does not match this object's recipient\n")
	case errors.Is(err, crypto.ErrAuthentication):
		fmt.Fprintf(os.Stderr, "Error: authentication failed, the object has been tampered with\n")
	case errors.Is(err, core.ErrIntegrity):
		fmt.Fprintf(os.Stderr, "Error: decrypted but the content digest does not match\n")
	case errors.Is(err, crypto.ErrWrongPassphrase):
		fmt.Fprintf(os.Stderr, "Error: wrong passphrase\n")
	case errors.Is(err, core.ErrInputUnavailable):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
