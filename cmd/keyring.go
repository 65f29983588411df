package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/sealstore/internal/core"
	"github.com/live-labs/sealstore/internal/crypto"
	"github.com/live-labs/sealstore/internal/keyring"
)

// KeyringSave saves the private key passphrase to the OS keyring
func KeyringSave() {
	store, err := OpenStore()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	passphrase, err := core.ReadPassphrase("Enter passphrase: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(passphrase)

	// Verify the passphrase actually opens the private key before storing it
	if _, err := crypto.LoadPrivateKey(privateKeyPath(), passphrase); err != nil {
		HandleError(err)
	}

	vaultID, err := store.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassphrase(vaultID, string(passphrase)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Passphrase saved to keyring")
}

// KeyringDelete removes the passphrase from the OS keyring
func KeyringDelete() {
	store, err := OpenStore()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	vaultID, err := store.GetVaultID()
	if err != nil {
		fmt.Println("No passphrase stored in keyring")
		return
	}

	if err := keyring.DeletePassphrase(vaultID); err != nil {
		fmt.Println("No passphrase stored in keyring")
		return
	}

	fmt.Println("Passphrase removed from keyring")
}

// KeyringStatus checks if a passphrase is stored in the keyring
func KeyringStatus() {
	store, err := OpenStore()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	vaultID, err := store.GetVaultID()
	if err != nil {
		fmt.Println("Passphrase: not stored")
		return
	}

	if keyring.HasPassphrase(vaultID) {
		fmt.Println("Passphrase: stored in keyring")
	} else {
		fmt.Println("Passphrase: not stored")
	}
}
