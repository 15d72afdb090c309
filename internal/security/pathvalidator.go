package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxInputSize caps how much text textseal will read from a file
const MaxInputSize = 1 << 20

var (
	ErrPathEscapes  = errors.New("path escapes vault directory")
	ErrAbsolutePath = errors.New("absolute paths outside the vault directory are not allowed")
	ErrEmptyPath    = errors.New("empty path not allowed")
	ErrNotRegular   = errors.New("not a regular file")
	ErrTooLarge     = errors.New("file too large")
)

// PathValidator confines file reads to the vault directory using os.Root.
type PathValidator struct {
	root    *os.Root
	rootDir string
}

// New creates a PathValidator rooted at dir
func New(dir string) (*PathValidator, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault directory: %w", err)
	}

	return &PathValidator{root: root, rootDir: absPath}, nil
}

// Close releases the root handle
func (pv *PathValidator) Close() error {
	if pv.root != nil {
		return pv.root.Close()
	}
	return nil
}

// Normalize turns a user-supplied path into a clean path relative to the
// vault directory. Absolute paths are accepted only when they point
// inside the directory.
func (pv *PathValidator) Normalize(userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}

	if filepath.IsAbs(userPath) {
		rel, err := filepath.Rel(pv.rootDir, filepath.Clean(userPath))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s", ErrAbsolutePath, userPath)
		}
		userPath = rel
	}

	// rejects escaping paths and reserved names
	if !filepath.IsLocal(userPath) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, userPath)
	}

	return filepath.Clean(userPath), nil
}

// ReadFile reads a regular file inside the vault directory, up to
// MaxInputSize bytes.
func (pv *PathValidator) ReadFile(userPath string) ([]byte, error) {
	rel, err := pv.Normalize(userPath)
	if err != nil {
		return nil, err
	}

	f, err := pv.root.Open(rel)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, rel)
	}
	if info.Size() > MaxInputSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, rel, info.Size(), MaxInputSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxInputSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, rel)
	}
	return data, nil
}
