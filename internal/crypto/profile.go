package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"strings"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/chacha20"
)

// Profile describes one symmetric cipher choice: the algorithm, the key
// length it requires and the IV length it requires. Profiles are values
// and are never modified after construction.
type Profile struct {
	Name      string
	KeyLength int
	IVLength  int

	prim primitive
}

// primitive is the cipher transform behind a profile. Implementations
// validate key and IV lengths themselves.
type primitive interface {
	seal(plaintext, key, iv []byte) ([]byte, error)
	open(ciphertext, key, iv []byte) ([]byte, error)
}

var (
	AES128CBC = Profile{Name: "aes-128-cbc", KeyLength: 16, IVLength: aes.BlockSize, prim: cbc{newBlock: aes.NewCipher}}
	AES192CBC = Profile{Name: "aes-192-cbc", KeyLength: 24, IVLength: aes.BlockSize, prim: cbc{newBlock: aes.NewCipher}}
	AES256CBC = Profile{Name: "aes-256-cbc", KeyLength: 32, IVLength: aes.BlockSize, prim: cbc{newBlock: aes.NewCipher}}
	AES256CTR = Profile{Name: "aes-256-ctr", KeyLength: 32, IVLength: aes.BlockSize, prim: ctr{newBlock: aes.NewCipher}}

	BlowfishCBC = Profile{Name: "blowfish-cbc", KeyLength: 32, IVLength: blowfish.BlockSize, prim: cbc{newBlock: newBlowfish}}

	ChaCha20  = Profile{Name: "chacha20", KeyLength: chacha20.KeySize, IVLength: chacha20.NonceSize, prim: stream{}}
	XChaCha20 = Profile{Name: "xchacha20", KeyLength: chacha20.KeySize, IVLength: chacha20.NonceSizeX, prim: stream{}}
)

var profiles = []Profile{AES128CBC, AES192CBC, AES256CBC, AES256CTR, BlowfishCBC, ChaCha20, XChaCha20}

// DefaultProfile returns AES-256 in CBC mode.
func DefaultProfile() Profile {
	return AES256CBC
}

// Profiles returns all supported profiles.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// LookupProfile finds a profile by name, ignoring case
func LookupProfile(name string) (Profile, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range profiles {
		if p.Name == want {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

func (p Profile) String() string {
	return p.Name
}

// Valid reports whether p is one of the built-in profiles.
func (p Profile) Valid() bool {
	return p.prim != nil && p.KeyLength > 0 && p.IVLength > 0
}

func newBlowfish(key []byte) (cipher.Block, error) {
	return blowfish.NewCipher(key)
}
