package cmd

import (
	"fmt"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/core"
	"github.com/illarion/textseal/internal/crypto"
)

// Init creates a new .textseal vault in the configured directory
func Init(cfg *config.Config, profileName string) {
	profile := resolveProfile(profileName, cfg.Profile)

	vault := openVault(cfg)
	defer vault.Close()

	if vault.Exists() {
		HandleError(core.ErrAlreadyExists)
	}

	password, err := GetPasswordForInit()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	if err := vault.Init(password, profile); err != nil {
		HandleError(err)
	}

	fmt.Printf("initialized: %s (%s)\n", vault.Path(), profile.Name)
}
