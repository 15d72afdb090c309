package core

import (
	"fmt"
	"os"

	"github.com/illarion/textseal/internal/crypto"
	"golang.org/x/term"
)

// ReadPassword reads a password from the terminal without echoing.
// The prompt goes to stderr so stdout stays clean for piping.
func ReadPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("no terminal to read password from; set TEXTSEAL_PASSWORD")
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return nil, crypto.ErrEmptyPassword
	}

	return password, nil
}

// ReadPasswordConfirm reads a password twice and ensures they match
func ReadPasswordConfirm() ([]byte, error) {
	password1, err := ReadPassword("Enter password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password1)

	password2, err := ReadPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password2)

	if !crypto.ConstantTimeCompare(password1, password2) {
		return nil, fmt.Errorf("passwords do not match")
	}

	// Return a copy of the password
	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}
