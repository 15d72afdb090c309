package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/core"
	"github.com/illarion/textseal/internal/crypto"
	"github.com/illarion/textseal/internal/keyring"
)

// Passwd changes the vault password and re-seals every entry
func Passwd(cfg *config.Config) {
	vault := openVault(cfg)
	defer vault.Close()

	currentPassword := vaultPassword(vault)
	defer crypto.ClearBytes(currentPassword)

	fmt.Fprintln(os.Stderr, "New password")
	newPassword, err := core.ReadPasswordConfirm()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(newPassword)

	if err := vault.ChangePassword(currentPassword, newPassword); err != nil {
		HandleError(err)
	}
	fmt.Println("password changed")

	// A keyring entry holding the old password would now be stale
	if vaultID, err := vault.GetVaultID(); err == nil && keyring.HasPassword(vaultID) {
		if err := keyring.SavePassword(vaultID, newPassword); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to update keyring: %v\n", err)
		} else {
			fmt.Println("keyring updated")
		}
	}

	if err := vault.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to compact vault: %v\n", err)
	}
}
