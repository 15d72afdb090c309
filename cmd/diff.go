package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/crypto"
)

// Diff compares the entry name with a local text file
func Diff(ctx context.Context, cfg *config.Config, name, file string) {
	vault := openVault(cfg)
	defer vault.Close()

	local, err := vault.ReadInputFile(file)
	if err != nil {
		HandleError(err)
	}

	password := vaultPassword(vault)
	defer crypto.ClearBytes(password)

	result, err := vault.Diff(ctx, name, local, password)
	if err != nil {
		HandleError(err)
	}

	if result.Equal() {
		fmt.Printf("%s: no differences\n", name)
		return
	}
	fmt.Printf("--- vault/%s\n+++ %s\n", name, file)
	fmt.Print(result.Format())
}
