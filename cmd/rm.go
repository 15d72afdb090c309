package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/crypto"
)

// Remove removes entries from the vault
func Remove(ctx context.Context, cfg *config.Config, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no entries specified")
		os.Exit(1)
	}

	vault := openVault(cfg)
	defer vault.Close()

	password := vaultPassword(vault)
	defer crypto.ClearBytes(password)

	if err := vault.Remove(ctx, names, password); err != nil {
		HandleError(err)
	}

	for _, name := range names {
		fmt.Printf("removed: %s\n", name)
	}

	if err := vault.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to compact vault: %v\n", err)
	}
}
