package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/sealstore/internal/ledger"
)

// Audit prints the access trail, oldest entry first
func Audit() {
	led := ledger.NewFileLedger(auditPath(), ledger.Options{Logger: newLogger()})

	entries, err := led.ReadEntries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No audit entries")
		return
	}

	for _, e := range entries {
		if e.ObjectID == "" {
			fmt.Printf("%s  %-10s %s\n", e.Timestamp, e.Action, e.Actor)
			continue
		}
		fmt.Printf("%s  %-10s %s  %s\n", e.Timestamp, e.Action, e.Actor, e.ObjectID)
	}
}
