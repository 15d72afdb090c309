package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/crypto"
	"github.com/illarion/textseal/internal/keyring"
)

// Keyring manages the vault password in the OS keyring
func Keyring(cfg *config.Config, action string) {
	vault := openVault(cfg)
	defer vault.Close()

	vaultID, err := vault.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	switch action {
	case "save":
		password, _, err := GetPasswordWithRetry("Enter password: ", "", vault.VerifyPassword)
		if err != nil {
			HandleError(err)
		}
		defer crypto.ClearBytes(password)

		if err := keyring.SavePassword(vaultID, password); err != nil {
			HandleError(err)
		}
		fmt.Println("password saved to keyring")
	case "delete":
		if err := keyring.DeletePassword(vaultID); err != nil {
			HandleError(err)
		}
		fmt.Println("password removed from keyring")
	case "status", "":
		if keyring.HasPassword(vaultID) {
			fmt.Println("password is saved in keyring")
		} else {
			fmt.Println("password is not saved in keyring")
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring action: %s\nSupported: save, delete, status\n", action)
		os.Exit(1)
	}
}
