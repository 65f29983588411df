package core

import (
	"fmt"
	"os"
	"syscall"

	"github.com/live-labs/sealstore/internal/crypto"
	"golang.org/x/term"
)

// ReadPassphrase reads a passphrase from the terminal without echoing
func ReadPassphrase(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after passphrase

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseConfirm reads a passphrase twice and ensures they match
func ReadPassphraseConfirm() ([]byte, error) {
	first, err := ReadPassphrase("Enter passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(first)

	second, err := ReadPassphrase("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(second)

	if !crypto.ConstantTimeCompare(first, second) {
		return nil, fmt.Errorf("passphrases do not match")
	}

	result := make([]byte, len(first))
	copy(result, first)
	return result, nil
}

// GetPassphraseFromEnv reads the passphrase from SEALSTORE_PASSPHRASE
func GetPassphraseFromEnv() []byte {
	passphrase := os.Getenv("SEALSTORE_PASSPHRASE")
	if passphrase == "" {
		return nil
	}
	// Return a copy so clearing the result does not race the environment
	result := make([]byte, len(passphrase))
	copy(result, []byte(passphrase))
	return result
}
