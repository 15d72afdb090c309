// Package config loads textseal settings from the environment, optionally
// seeded from a dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/illarion/textseal/internal/crypto"
	"github.com/joho/godotenv"
)

const (
	EnvPassword = "TEXTSEAL_PASSWORD"
	EnvProfile  = "TEXTSEAL_PROFILE"
	EnvDir      = "TEXTSEAL_DIR"
	EnvLogLevel = "TEXTSEAL_LOG_LEVEL"
	EnvFile     = "TEXTSEAL_ENV_FILE"

	DefaultEnvFile  = ".textseal.env"
	DefaultLogLevel = "warn"
)

// Config holds resolved settings
type Config struct {
	Dir      string
	Profile  crypto.Profile
	LogLevel string
	// EnvFile is the dotenv file name that was looked up
	EnvFile string
	// HasPassword reports whether TEXTSEAL_PASSWORD was set. The value
	// itself is read on demand by Password so it is not kept around.
	HasPassword bool
}

// Load reads the optional dotenv file and then the environment. Variables
// already present in the environment take precedence over the file. A
// missing default dotenv file is not an error; a missing explicit one is.
func Load() (*Config, error) {
	envFile := os.Getenv(EnvFile)
	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Dir:         ".",
		Profile:     crypto.DefaultProfile(),
		LogLevel:    DefaultLogLevel,
		EnvFile:     envFile,
		HasPassword: os.Getenv(EnvPassword) != "",
	}

	if dir := strings.TrimSpace(os.Getenv(EnvDir)); dir != "" {
		cfg.Dir = dir
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.LogLevel = level
	}
	if name := os.Getenv(EnvProfile); name != "" {
		profile, err := crypto.LookupProfile(name)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvProfile, err)
		}
		cfg.Profile = profile
	}

	return cfg, nil
}

// Password returns a copy of TEXTSEAL_PASSWORD, or nil when unset
func Password() []byte {
	password := os.Getenv(EnvPassword)
	if password == "" {
		return nil
	}
	result := make([]byte, len(password))
	copy(result, password)
	return result
}
