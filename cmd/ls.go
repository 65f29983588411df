package cmd

import (
	"fmt"
	"time"
)

// Ls shows objects stored in the vault
func Ls() {
	vault, store, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	objects, err := vault.List()
	if err != nil {
		HandleError(err)
	}

	if len(objects) == 0 {
		fmt.Println("No objects in vault")
		return
	}

	fmt.Println("Objects in vault:")
	for _, obj := range objects {
		fmt.Printf("  %s (%s, stored %s)\n", obj.ID, formatSize(obj.Size),
			obj.CreatedAt.Format(time.RFC3339))
	}
}
