package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/core"
	"github.com/illarion/textseal/internal/git"
	"github.com/illarion/textseal/internal/keyring"
)

// Status shows vault details and the entry list. No password required.
func Status(ctx context.Context, cfg *config.Config) {
	vault := openVault(cfg)
	defer vault.Close()

	status, err := vault.Status(ctx)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Vault: %s\n", status.Path)
	fmt.Printf("Default profile: %s\n", status.Profile)
	if !status.LastModified.IsZero() {
		fmt.Printf("Last modified: %s\n", status.LastModified.Local().Format("2006-01-02 15:04:05"))
	}
	if status.VaultID != "" {
		state := "not saved"
		if keyring.HasPassword(status.VaultID) {
			state = "saved"
		}
		fmt.Printf("Keyring: %s\n", state)
	}
	fmt.Printf("Entries: %d (%s)\n", status.EntryCount, formatSize(status.TotalSize))

	if len(status.ByProfile) > 1 {
		names := make([]string, 0, len(status.ByProfile))
		for name := range status.ByProfile {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %d\n", name, status.ByProfile[name])
		}
	}

	if len(status.Entries) > 0 {
		fmt.Println()
		for _, e := range status.Entries {
			fmt.Printf("  %s [%s] (%s)\n", e.Name, e.Profile, formatSize(e.Size))
		}
	}

	fmt.Print(git.Check(cfg.Dir, core.VaultFile, envFileInDir(cfg)).Format(core.VaultFile))
}

// envFileInDir returns the dotenv file relative to the vault directory, or
// "" when it lives elsewhere
func envFileInDir(cfg *config.Config) string {
	if cfg.EnvFile == "" {
		return ""
	}
	file, err := filepath.Abs(cfg.EnvFile)
	if err != nil {
		return ""
	}
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(dir, file)
	if err != nil || !filepath.IsLocal(rel) {
		return ""
	}
	return rel
}
