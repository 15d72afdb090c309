// Package crypto provides password-based text encryption for textseal.
//
// A sealed blob is base64(IV || ciphertext):
//   - the key is stretched from the password by repeated base64 encoding
//     and truncated to the profile's key length (no salt, not a vetted KDF)
//   - the IV is fresh random bytes of the profile's IV length
//   - the default profile is AES-256-CBC with PKCS#7 padding
//
// Blobs carry no profile marker; the same profile must be used to decrypt.
// None of the profiles authenticate the ciphertext.
//
// Memory safety:
//   - Derived keys are zeroed with ClearBytes() after each call
package crypto
