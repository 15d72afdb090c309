package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/crypto"
)

// Get decrypts the entry name and prints it to stdout
func Get(ctx context.Context, cfg *config.Config, name string) {
	vault := openVault(cfg)
	defer vault.Close()

	password := vaultPassword(vault)
	defer crypto.ClearBytes(password)

	text, err := vault.Get(ctx, name, password)
	if err != nil {
		HandleError(err)
	}

	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
}
