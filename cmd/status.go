package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/live-labs/sealstore/internal/crypto"
	"github.com/live-labs/sealstore/internal/keyring"
)

// Status shows the current state of the vault
func Status() {
	if _, err := os.Stat(dbPath()); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No vault found in current directory")
			fmt.Println("Run 'sealstore init' to create one")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		return
	}

	store, err := OpenStore()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	objects, err := store.List()
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("Objects: %d\n", len(objects))

	if modified, err := store.GetModified(); err == nil {
		fmt.Printf("Last modified: %s\n", modified.Format(time.RFC3339))
	}

	switch data, err := os.ReadFile(privateKeyPath()); {
	case os.IsNotExist(err):
		fmt.Println("Private key: missing (run 'sealstore keygen')")
	case err != nil:
		fmt.Printf("Private key: unreadable (%s)\n", err)
	case crypto.IsSealedPrivatePEM(data):
		fmt.Println("Private key: present (passphrase protected)")
	default:
		fmt.Println("Private key: present (unprotected)")
	}

	if _, err := os.Stat(publicKeyPath()); err == nil {
		fmt.Println("Public key: present")
	} else {
		fmt.Println("Public key: missing")
	}

	vaultID, err := store.GetVaultID()
	if err == nil && keyring.HasPassphrase(vaultID) {
		fmt.Println("Keyring: passphrase stored")
	} else {
		fmt.Println("Keyring: passphrase not stored")
	}
}
