package crypto

import (
	"testing"
	"unicode/utf8"
)

// FuzzEncryptDecrypt checks the round trip for arbitrary text and passwords
func FuzzEncryptDecrypt(f *testing.F) {
	f.Add("hello world", "correct horse")
	f.Add("x", "p")
	f.Add("ünïcödé", "🔑")

	f.Fuzz(func(t *testing.T, plaintext, password string) {
		if plaintext == "" || password == "" || !utf8.ValidString(plaintext) {
			return
		}
		if len(plaintext) > 10000 || len(password) > 1000 {
			return
		}

		blob, err := Encrypt(plaintext, password, DefaultProfile())
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		got, err := Decrypt(blob, password, DefaultProfile())
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if got != plaintext {
			t.Errorf("Decryption mismatch: got %q, want %q", got, plaintext)
		}
	})
}

// FuzzDecrypt feeds arbitrary blobs to Decrypt; it must never panic
func FuzzDecrypt(f *testing.F) {
	f.Add("")
	f.Add("AAAAAAAAAAAAAAAAAAAAAA==")
	f.Add("not base64")

	f.Fuzz(func(t *testing.T, blob string) {
		for _, p := range Profiles() {
			_, _ = Decrypt(blob, "pw", p)
		}
	})
}
