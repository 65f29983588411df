package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/sealstore/internal/storage"
)

// Init creates a new vault in the current directory
func Init() {
	if _, err := os.Stat(dbPath()); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists in this directory\n", VaultDir)
		fmt.Fprintf(os.Stderr, "Use 'sealstore status' to see current state\n")
		os.Exit(1)
	}

	if err := os.MkdirAll(VaultDir, DirPermSecure); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create %s: %s\n", VaultDir, err)
		os.Exit(1)
	}

	store, err := storage.Open(dbPath(), storage.Options{Logger: newLogger()})
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		HandleError(err)
	}

	vaultID, err := store.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Initialized %s (vault %s)\n", VaultDir, vaultID)
}
