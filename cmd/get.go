package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/sealstore/internal/crypto"
)

// Get retrieves, decrypts and verifies an object. The plaintext is written
// to out, or to stdout when out is empty.
func Get(objectID, out string) {
	vault, store, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	priv, err := LoadPrivateKeyInteractive(store)
	if err != nil {
		HandleError(err)
	}

	plaintext, err := vault.Get(Actor(), objectID, priv)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(plaintext)

	if out == "" {
		os.Stdout.Write(plaintext)
		return
	}

	if err := os.WriteFile(out, plaintext, FilePermSecure); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %q to %s\n", objectID, out)
}
