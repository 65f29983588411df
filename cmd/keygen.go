package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/sealstore/internal/core"
	"github.com/live-labs/sealstore/internal/crypto"
	"github.com/live-labs/sealstore/internal/keyring"
	"github.com/live-labs/sealstore/internal/ledger"
)

// Keygen generates a fresh keypair for the vault. With seal, the private
// key is encrypted under a passphrase; with saveKeyring, that passphrase
// is stored in the OS keyring.
func Keygen(seal, saveKeyring bool) {
	store, err := OpenStore()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	if _, err := os.Stat(privateKeyPath()); err == nil {
		fmt.Fprintf(os.Stderr, "Error: a private key already exists at %s\n", privateKeyPath())
		fmt.Fprintf(os.Stderr, "Key rotation is not supported, remove the key manually to replace it\n")
		os.Exit(1)
	}

	kp, err := crypto.GenerateKeypair()
	if err != nil {
		HandleError(err)
	}

	pubPEM, err := kp.EncodePublicPEM()
	if err != nil {
		HandleError(err)
	}

	privPEM := kp.EncodePrivatePEM()
	defer crypto.ClearBytes(privPEM)

	keyData := privPEM
	if seal {
		passphrase := getKeygenPassphrase()
		defer crypto.ClearBytes(passphrase)

		sealed, err := crypto.SealPrivatePEM(privPEM, passphrase)
		if err != nil {
			HandleError(err)
		}
		keyData = sealed

		if saveKeyring {
			vaultID, err := store.GetOrCreateVaultID()
			if err != nil {
				HandleError(err)
			}
			if err := keyring.SavePassphrase(vaultID, string(passphrase)); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to save passphrase to keyring: %s\n", err)
			} else {
				fmt.Println("Passphrase saved to keyring")
			}
		}
	}

	if err := os.WriteFile(privateKeyPath(), keyData, FilePermSecure); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write private key: %s\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(publicKeyPath(), pubPEM, FilePermSecure); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write public key: %s\n", err)
		os.Exit(1)
	}

	led := ledger.NewFileLedger(auditPath(), ledger.Options{Logger: newLogger()})
	led.Record(Actor(), "", ledger.ActionKeygen)

	fmt.Printf("Generated keypair: %s, %s\n", privateKeyPath(), publicKeyPath())
}

func getKeygenPassphrase() []byte {
	if passphrase := core.GetPassphraseFromEnv(); passphrase != nil {
		return passphrase
	}

	passphrase, err := core.ReadPassphraseConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return passphrase
}
