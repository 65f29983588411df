package cmd

import (
	"fmt"
)

// Rm deletes an object from the vault
func Rm(objectID string) {
	vault, store, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	if err := vault.Remove(Actor(), objectID); err != nil {
		HandleError(err)
	}

	fmt.Printf("Removed %q\n", objectID)
}
