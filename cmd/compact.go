package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/textseal/internal/config"
)

// Compact reclaims unused space in the vault file
func Compact(cfg *config.Config) {
	vault := openVault(cfg)
	defer vault.Close()

	before := fileSize(vault.Path())
	if err := vault.Compact(); err != nil {
		HandleError(err)
	}
	after := fileSize(vault.Path())

	fmt.Printf("compacted: %s -> %s\n", formatSize(before), formatSize(after))
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
