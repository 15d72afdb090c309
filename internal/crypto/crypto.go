package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrEmptyData        = errors.New("no data to encrypt")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrEmptyKey         = errors.New("key cannot be empty")
	ErrInvalidKeyLength = errors.New("invalid key length")
	ErrStretchLimit     = errors.New("key stretching did not converge")
	ErrCipher           = errors.New("cipher failure")
	ErrMalformedInput   = errors.New("malformed input")
	ErrUnknownProfile   = errors.New("unknown cipher profile")
)

// Encrypt seals plaintext under a key derived from password and returns
// base64(IV || ciphertext). A fresh random IV is used on every call.
func Encrypt(plaintext, password string, profile Profile) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyData
	}
	if password == "" {
		return "", ErrEmptyPassword
	}
	if !profile.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, profile.Name)
	}

	key, err := DeriveKey(password, profile.KeyLength)
	if err != nil {
		return "", err
	}
	defer ClearBytes(key)

	iv, err := GenerateRandom(profile.IVLength)
	if err != nil {
		return "", err
	}

	ciphertext, err := profile.prim.seal([]byte(plaintext), key, iv)
	if err != nil {
		return "", err
	}

	framed := make([]byte, 0, len(iv)+len(ciphertext))
	framed = append(framed, iv...)
	framed = append(framed, ciphertext...)

	return base64.StdEncoding.EncodeToString(framed), nil
}

// Decrypt reverses Encrypt. Input that is not valid base64, is shorter
// than the IV, or decrypts to something other than UTF-8 text fails with
// ErrMalformedInput. Cipher failures (bad padding, bad lengths) fail with
// ErrCipher.
func Decrypt(blob, password string, profile Profile) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if !profile.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, profile.Name)
	}

	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if len(data) < profile.IVLength {
		return "", fmt.Errorf("%w: %d bytes, need at least %d for the iv", ErrMalformedInput, len(data), profile.IVLength)
	}

	iv := data[:profile.IVLength]
	ciphertext := data[profile.IVLength:]

	key, err := DeriveKey(password, profile.KeyLength)
	if err != nil {
		return "", err
	}
	defer ClearBytes(key)

	plaintext, err := profile.prim.open(ciphertext, key, iv)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		ClearBytes(plaintext)
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", ErrMalformedInput)
	}

	return string(plaintext), nil
}

// DecryptLenient is Decrypt with the permissive policy: malformed input and
// cipher failures produce an empty string instead of an error. An empty
// password is still reported.
func DecryptLenient(blob, password string, profile Profile) (string, error) {
	plaintext, err := Decrypt(blob, password, profile)
	if errors.Is(err, ErrMalformedInput) || errors.Is(err, ErrCipher) {
		return "", nil
	}
	return plaintext, err
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
