// Package keyring stores vault passwords in the OS keyring, keyed by
// vault id.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "textseal"

// ErrNotFound is returned when no password is stored for a vault
var ErrNotFound = keyring.ErrNotFound

// SavePassword stores a password in the OS keyring
func SavePassword(vaultID string, password []byte) error {
	return keyring.Set(serviceName, vaultID, string(password))
}

// GetPassword retrieves a password from the OS keyring. The caller should
// clear the returned bytes when done.
func GetPassword(vaultID string) ([]byte, error) {
	password, err := keyring.Get(serviceName, vaultID)
	if err != nil {
		return nil, err
	}
	return []byte(password), nil
}

// DeletePassword removes a password from the OS keyring. Deleting a
// password that is not stored is not an error.
func DeletePassword(vaultID string) error {
	err := keyring.Delete(serviceName, vaultID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// HasPassword checks if a password is stored in the keyring
func HasPassword(vaultID string) bool {
	_, err := keyring.Get(serviceName, vaultID)
	return err == nil
}
