package cmd

import (
	"fmt"
	"os"
)

// Compact compacts the vault database to reclaim unused space
func Compact() {
	store, err := OpenStore()
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	info, err := os.Stat(dbPath())
	if err != nil {
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := store.Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(dbPath())
	if err != nil {
		HandleError(err)
	}
	sizeAfter := info.Size()

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}
