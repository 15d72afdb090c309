package crypto

import (
	"encoding/base64"
	"fmt"
)

// MaxStretchRounds bounds the base64 stretching loop. Each round grows the
// material by a third, so 64 rounds covers any practical key length.
const MaxStretchRounds = 64

var stretchRounds = MaxStretchRounds

// DeriveKey stretches a password into exactly length key bytes.
//
// The password's UTF-8 bytes are replaced by their own base64 text until
// there are at least length bytes, then the first length bytes are kept.
// The result depends only on (password, length); there is no salt.
// This is not a vetted KDF.
func DeriveKey(password string, length int) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyKey
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyLength, length)
	}

	material := []byte(password)
	for round := 0; len(material) < length; round++ {
		if round >= stretchRounds {
			return nil, fmt.Errorf("%w: %d bytes after %d rounds", ErrStretchLimit, len(material), round)
		}
		material = []byte(base64.StdEncoding.EncodeToString(material))
	}

	excess := len(material) - length
	key := make([]byte, length)
	copy(key, material[:len(material)-excess])
	ClearBytes(material)

	return key, nil
}
