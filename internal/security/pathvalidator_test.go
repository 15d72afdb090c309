package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPathValidator_Normalize(t *testing.T) {
	tmpDir := t.TempDir()

	validator, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	defer validator.Close()

	tests := []struct {
		name    string
		input   string
		want    string
		errType error
	}{
		{"simple file", "secret.txt", "secret.txt", nil},
		{"nested file", "config/.env", filepath.Join("config", ".env"), nil},
		{"dot slash", "./secret.txt", "secret.txt", nil},
		{"dot segments", "a/./b/../secret.txt", filepath.Join("a", "secret.txt"), nil},
		{"absolute inside", filepath.Join(tmpDir, "inside.txt"), "inside.txt", nil},

		{"empty path", "", "", ErrEmptyPath},
		{"parent directory", "../secret.txt", "", ErrPathEscapes},
		{"nested parent", "a/../../secret.txt", "", ErrPathEscapes},
		{"absolute outside", "/etc/passwd", "", ErrAbsolutePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.Normalize(tt.input)
			if tt.errType != nil {
				if !errors.Is(err, tt.errType) {
					t.Errorf("Normalize(%q) error = %v, want %v", tt.input, err, tt.errType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPathValidator_ReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "note.txt"), []byte("remember me"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "sub", "nested.txt"), []byte("nested"), 0600); err != nil {
		t.Fatalf("Failed to create nested file: %v", err)
	}

	validator, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	defer validator.Close()

	tests := []struct {
		name      string
		path      string
		expected  string
		shouldErr bool
	}{
		{"valid file", "note.txt", "remember me", false},
		{"nested file", "sub/nested.txt", "nested", false},
		{"nonexistent file", "missing.txt", "", true},
		{"directory", "sub", "", true},
		{"path traversal", "../outside.txt", "", true},
		{"absolute path", "/etc/passwd", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := validator.ReadFile(tt.path)

			if tt.shouldErr {
				if err == nil {
					t.Errorf("Expected error when reading %q, got none", tt.path)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error reading %q: %v", tt.path, err)
				return
			}
			if string(data) != tt.expected {
				t.Errorf("Content mismatch: got %q, want %q", data, tt.expected)
			}
		})
	}
}

func TestPathValidator_ReadFileTooLarge(t *testing.T) {
	tmpDir := t.TempDir()

	big := make([]byte, MaxInputSize+1)
	if err := os.WriteFile(filepath.Join(tmpDir, "big.txt"), big, 0600); err != nil {
		t.Fatalf("Failed to create big file: %v", err)
	}

	validator, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	defer validator.Close()

	if _, err := validator.ReadFile("big.txt"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
}

// os.Root must refuse symlinks that lead outside the directory
func TestPathValidator_SymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	target := filepath.Join(outside, "target.txt")
	if err := os.WriteFile(target, []byte("outside"), 0600); err != nil {
		t.Fatalf("Failed to create target: %v", err)
	}

	tmpDir := t.TempDir()
	if err := os.Symlink(target, filepath.Join(tmpDir, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	validator, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	defer validator.Close()

	if data, err := validator.ReadFile("link.txt"); err == nil {
		t.Errorf("Read through escaping symlink succeeded: %q", data)
	}
}
