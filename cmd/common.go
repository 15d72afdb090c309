package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/core"
	"github.com/illarion/textseal/internal/crypto"
	"github.com/illarion/textseal/internal/keyring"
	"github.com/illarion/textseal/internal/logging"
)

// Password sources
const (
	SourceEnv     = "env"
	SourceKeyring = "keyring"
	SourcePrompt  = "prompt"
)

// GetPassword resolves a password from TEXTSEAL_PASSWORD, then the OS
// keyring (when vaultID is set), then a terminal prompt. It returns the
// source it used. The caller is responsible for calling crypto.ClearBytes
// on the returned password.
func GetPassword(prompt, vaultID string) ([]byte, string, error) {
	if password := config.Password(); password != nil {
		return password, SourceEnv, nil
	}

	if vaultID != "" {
		if password, err := keyring.GetPassword(vaultID); err == nil && len(password) > 0 {
			return password, SourceKeyring, nil
		}
	}

	password, err := core.ReadPassword(prompt)
	if err != nil {
		return nil, "", err
	}
	return password, SourcePrompt, nil
}

// GetPasswordWithRetry is GetPassword plus verification. A keyring password
// that no longer matches the vault is reported and the user is prompted
// instead.
func GetPasswordWithRetry(prompt, vaultID string, verify func([]byte) error) ([]byte, string, error) {
	password, source, err := GetPassword(prompt, vaultID)
	if err != nil {
		return nil, "", err
	}

	err = verify(password)
	if err == nil {
		return password, source, nil
	}
	crypto.ClearBytes(password)

	if source != SourceKeyring || !errors.Is(err, core.ErrWrongPassword) {
		return nil, "", err
	}

	logging.New("cmd", "GetPasswordWithRetry").WithField("vault_id", vaultID).Warn("stale keyring password")
	fmt.Fprintln(os.Stderr, "warning: password in keyring does not match this vault")

	password, err = core.ReadPassword(prompt)
	if err != nil {
		return nil, "", err
	}
	if err := verify(password); err != nil {
		crypto.ClearBytes(password)
		return nil, "", err
	}
	return password, SourcePrompt, nil
}

// GetPasswordOrExit is like GetPassword without keyring lookup but exits on error
func GetPasswordOrExit(prompt string) []byte {
	password, _, err := GetPassword(prompt, "")
	if err != nil {
		HandleError(err)
	}
	return password
}

// GetPasswordForInit retrieves a new password.
// Checks environment variable first, then prompts with confirmation
func GetPasswordForInit() ([]byte, error) {
	if password := config.Password(); password != nil {
		return password, nil
	}
	return core.ReadPasswordConfirm()
}

// openVault opens the vault in cfg.Dir or exits
func openVault(cfg *config.Config) *core.Vault {
	vault, err := core.New(cfg.Dir)
	if err != nil {
		HandleError(err)
	}
	return vault
}

// vaultPassword resolves and verifies the password for an existing vault
func vaultPassword(vault *core.Vault) []byte {
	vaultID, _ := vault.GetVaultID()
	password, _, err := GetPasswordWithRetry("Enter password: ", vaultID, vault.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	return password
}

// readInput returns args joined by spaces, or all of r when no args are given
func readInput(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// resolveProfile picks the named profile, or fallback when name is empty
func resolveProfile(name string, fallback crypto.Profile) crypto.Profile {
	if name == "" {
		return fallback
	}
	profile, err := crypto.LookupProfile(name)
	if err != nil {
		HandleError(err)
	}
	return profile
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: textseal vault not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'textseal init' first\n")
	case errors.Is(err, core.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: %s already exists in this directory\n", core.VaultFile)
		fmt.Fprintf(os.Stderr, "Use 'textseal status' to see current state\n")
	case errors.Is(err, core.ErrWrongPassword):
		fmt.Fprintf(os.Stderr, "Error: wrong password\n")
	case errors.Is(err, crypto.ErrUnknownProfile):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'textseal profiles' to list supported profiles\n")
	case errors.Is(err, crypto.ErrMalformedInput), errors.Is(err, crypto.ErrCipher):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Check the password and profile, or use --lenient\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// formatSize formats a size in human-readable form
func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
