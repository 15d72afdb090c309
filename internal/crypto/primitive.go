package crypto

import (
	"bytes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// cbc is a block cipher in CBC mode with PKCS#7 padding
type cbc struct {
	newBlock func(key []byte) (cipher.Block, error)
}

func (c cbc) seal(plaintext, key, iv []byte) ([]byte, error) {
	block, err := c.newBlock(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create cipher: %w", ErrCipher, err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: iv length %d, want %d", ErrCipher, len(iv), block.BlockSize())
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

func (c cbc) open(ciphertext, key, iv []byte) ([]byte, error) {
	block, err := c.newBlock(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create cipher: %w", ErrCipher, err)
	}
	bs := block.BlockSize()
	if len(iv) != bs {
		return nil, fmt.Errorf("%w: iv length %d, want %d", ErrCipher, len(iv), bs)
	}
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrCipher)
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, bs)
}

// ctr is a block cipher in counter mode. No padding.
type ctr struct {
	newBlock func(key []byte) (cipher.Block, error)
}

func (c ctr) seal(plaintext, key, iv []byte) ([]byte, error) {
	block, err := c.newBlock(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create cipher: %w", ErrCipher, err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: iv length %d, want %d", ErrCipher, len(iv), block.BlockSize())
	}

	out := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv).XORKeyStream(out, plaintext)
	return out, nil
}

func (c ctr) open(ciphertext, key, iv []byte) ([]byte, error) {
	return c.seal(ciphertext, key, iv)
}

// stream is ChaCha20 (12-byte nonce) or XChaCha20 (24-byte nonce),
// selected by the nonce length.
type stream struct{}

func (stream) seal(plaintext, key, iv []byte) ([]byte, error) {
	s, err := chacha20.NewUnauthenticatedCipher(key, iv)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCipher, err)
	}
	out := make([]byte, len(plaintext))
	s.XORKeyStream(out, plaintext)
	return out, nil
}

func (s stream) open(ciphertext, key, iv []byte) ([]byte, error) {
	return s.seal(ciphertext, key, iv)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padding", ErrCipher)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: invalid padding", ErrCipher)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", ErrCipher)
		}
	}
	return data[:len(data)-n], nil
}
