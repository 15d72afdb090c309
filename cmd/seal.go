package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/crypto"
)

// Encrypt seals text from args or stdin and prints the base64 blob
func Encrypt(cfg *config.Config, profileName string, args []string) {
	profile := resolveProfile(profileName, cfg.Profile)

	text, err := readInput(args, os.Stdin)
	if err != nil {
		HandleError(err)
	}

	password := GetPasswordOrExit("Enter password: ")
	defer crypto.ClearBytes(password)

	blob, err := crypto.Encrypt(text, string(password), profile)
	if err != nil {
		HandleError(err)
	}
	fmt.Println(blob)
}

// Decrypt opens a base64 blob from args or stdin and prints the plaintext.
// With lenient set, malformed input prints nothing and exits 0.
func Decrypt(cfg *config.Config, profileName string, lenient bool, args []string) {
	profile := resolveProfile(profileName, cfg.Profile)

	blob, err := readInput(args, os.Stdin)
	if err != nil {
		HandleError(err)
	}
	blob = strings.TrimSpace(blob)

	password := GetPasswordOrExit("Enter password: ")
	defer crypto.ClearBytes(password)

	var text string
	if lenient {
		text, err = crypto.DecryptLenient(blob, string(password), profile)
	} else {
		text, err = crypto.Decrypt(blob, string(password), profile)
	}
	if err != nil {
		HandleError(err)
	}
	fmt.Print(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
}

// Profiles lists the supported cipher profiles
func Profiles(cfg *config.Config) {
	fmt.Printf("%-14s %5s %5s\n", "PROFILE", "KEY", "IV")
	for _, p := range crypto.Profiles() {
		marker := ""
		if p.Name == cfg.Profile.Name {
			marker = " (default)"
		}
		fmt.Printf("%-14s %5d %5d%s\n", p.Name, p.KeyLength, p.IVLength, marker)
	}
}
