package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/live-labs/sealstore/internal/crypto"
)

// Put encrypts a file and stores it under an object id
func Put(file, objectID string) {
	if objectID == "" {
		objectID = filepath.Base(file)
	}

	pub, err := crypto.LoadPublicKey(publicKeyPath())
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: no public key found, run 'sealstore keygen' first\n")
			os.Exit(1)
		}
		HandleError(err)
	}

	vault, store, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	if err := vault.PutFile(Actor(), objectID, file, pub); err != nil {
		HandleError(err)
	}

	fmt.Printf("Stored %s as %q\n", file, objectID)
}
