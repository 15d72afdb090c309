package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/crypto"
)

// Put seals text under name. The text comes from file, the remaining
// args, or stdin, in that order.
func Put(ctx context.Context, cfg *config.Config, profileName, file, name string, args []string) {
	vault := openVault(cfg)
	defer vault.Close()

	var profile crypto.Profile
	if profileName != "" {
		profile = resolveProfile(profileName, cfg.Profile)
	}

	var (
		text string
		err  error
	)
	if file != "" {
		text, err = vault.ReadInputFile(file)
	} else {
		text, err = readInput(args, os.Stdin)
	}
	if err != nil {
		HandleError(err)
	}

	password := vaultPassword(vault)
	defer crypto.ClearBytes(password)

	if err := vault.Put(ctx, name, text, password, profile); err != nil {
		HandleError(err)
	}

	fmt.Printf("sealed: %s (%s)\n", name, formatSize(int64(len(text))))
}
