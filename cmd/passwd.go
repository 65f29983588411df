package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/sealstore/internal/core"
	"github.com/live-labs/sealstore/internal/crypto"
	"github.com/live-labs/sealstore/internal/keyring"
)

// Passwd changes the passphrase protecting the private key
func Passwd() {
	data, err := os.ReadFile(privateKeyPath())
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: no private key found, run 'sealstore keygen' first\n")
			os.Exit(1)
		}
		HandleError(err)
	}

	store, err := OpenStore()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	vaultID, _ := store.GetVaultID()

	var current []byte
	if crypto.IsSealedPrivatePEM(data) {
		current = GetPassphraseOrExit("Enter current passphrase: ", vaultID)
		defer crypto.ClearBytes(current)
	}

	priv, err := crypto.OpenPrivatePEM(data, current)
	if err != nil {
		HandleError(err)
	}

	newPassphrase, err := core.ReadPassphraseConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(newPassphrase)

	keyPEM := crypto.EncodePrivateKeyPEM(priv)
	defer crypto.ClearBytes(keyPEM)

	sealed, err := crypto.SealPrivatePEM(keyPEM, newPassphrase)
	if err != nil {
		HandleError(err)
	}

	if err := os.WriteFile(privateKeyPath(), sealed, FilePermSecure); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	// Always try to update the keyring if a vault ID exists. This covers
	// both refreshing an existing entry and a keyring that was unavailable
	// when the key was generated.
	if vaultID != "" && keyring.HasPassphrase(vaultID) {
		if err := keyring.SavePassphrase(vaultID, string(newPassphrase)); err == nil {
			fmt.Println("Keyring updated with new passphrase")
		}
	}

	fmt.Println("passphrase changed successfully")
}
