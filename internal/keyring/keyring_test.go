package keyring

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyringRoundTrip(t *testing.T) {
	keyring.MockInit()

	vaultID := "0b6c3f0e-1111-4222-8333-444455556666"
	if HasPassword(vaultID) {
		t.Fatal("Fresh mock keyring should be empty")
	}

	if err := SavePassword(vaultID, []byte("hunter2")); err != nil {
		t.Fatalf("SavePassword failed: %v", err)
	}
	if !HasPassword(vaultID) {
		t.Error("HasPassword should report stored password")
	}

	got, err := GetPassword(vaultID)
	if err != nil {
		t.Fatalf("GetPassword failed: %v", err)
	}
	if string(got) != "hunter2" {
		t.Errorf("GetPassword = %q, want hunter2", got)
	}

	if err := DeletePassword(vaultID); err != nil {
		t.Fatalf("DeletePassword failed: %v", err)
	}
	if HasPassword(vaultID) {
		t.Error("Password should be gone after delete")
	}

	// deleting again is a no-op
	if err := DeletePassword(vaultID); err != nil {
		t.Errorf("Second DeletePassword failed: %v", err)
	}

	if _, err := GetPassword(vaultID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
