package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/illarion/textseal/internal/crypto"
	"github.com/illarion/textseal/internal/logging"
	"github.com/illarion/textseal/internal/security"
	"github.com/illarion/textseal/internal/storage"
)

const (
	VaultFile           = ".textseal"
	passwordCheckString = "textseal-password-check"
)

var (
	ErrNotInitialized = errors.New("textseal vault not initialized")
	ErrAlreadyExists  = errors.New("textseal vault already exists")
	ErrWrongPassword  = errors.New("wrong password")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrEmptyName      = errors.New("entry name cannot be empty")
	ErrNotText        = errors.New("input is not valid UTF-8 text")
)

// Vault manages named sealed entries in a .textseal file
type Vault struct {
	path      string
	validator *security.PathValidator
}

// New creates a Vault for the directory dir. The vault file itself is
// only opened for the duration of each operation.
func New(dir string) (*Vault, error) {
	validator, err := security.New(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path validator: %w", err)
	}

	return &Vault{
		path:      filepath.Join(dir, VaultFile),
		validator: validator,
	}, nil
}

// Close releases resources held by the Vault
func (v *Vault) Close() error {
	if v.validator != nil {
		return v.validator.Close()
	}
	return nil
}

// Path returns the vault file path
func (v *Vault) Path() string {
	return v.path
}

// Exists reports whether the vault file is present
func (v *Vault) Exists() bool {
	_, err := os.Stat(v.path)
	return err == nil
}

// open opens an existing, initialized vault database
func (v *Vault) open() (*storage.Storage, error) {
	if !v.Exists() {
		return nil, ErrNotInitialized
	}

	db, err := storage.Open(v.path)
	if err != nil {
		return nil, err
	}

	initialized, err := db.IsInitialized()
	if err != nil || !initialized {
		db.Close()
		return nil, ErrNotInitialized
	}
	return db, nil
}

func vaultProfile(db *storage.Storage) (crypto.Profile, error) {
	name, err := db.GetProfile()
	if err != nil {
		return crypto.Profile{}, fmt.Errorf("failed to read vault profile: %w", err)
	}
	return crypto.LookupProfile(name)
}

// checkPassword decrypts the stored check blob with password
func checkPassword(db *storage.Storage, password []byte) error {
	if len(password) == 0 {
		return crypto.ErrEmptyPassword
	}

	profile, err := vaultProfile(db)
	if err != nil {
		return err
	}
	check, err := db.GetCheck()
	if err != nil {
		return fmt.Errorf("failed to read password check: %w", err)
	}

	plain, err := crypto.Decrypt(check, string(password), profile)
	if err != nil || plain != passwordCheckString {
		return ErrWrongPassword
	}
	return nil
}

// Init creates a new vault sealed with password. A zero profile selects
// the default.
func (v *Vault) Init(password []byte, profile crypto.Profile) error {
	log := logging.New("core", "Init")

	if v.Exists() {
		return ErrAlreadyExists
	}
	if len(password) == 0 {
		return crypto.ErrEmptyPassword
	}
	if profile.Name == "" {
		profile = crypto.DefaultProfile()
	}

	check, err := crypto.Encrypt(passwordCheckString, string(password), profile)
	if err != nil {
		return fmt.Errorf("failed to seal password check: %w", err)
	}

	db, err := storage.Open(v.path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := db.Initialize(profile.Name); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.SetCheck(check); err != nil {
		return fmt.Errorf("failed to store password check: %w", err)
	}
	if _, err := db.GetOrCreateVaultID(); err != nil {
		return fmt.Errorf("failed to create vault id: %w", err)
	}

	log.WithField("profile", profile.Name).Info("vault initialized")
	return nil
}

// VerifyPassword checks if the password is correct for this vault
func (v *Vault) VerifyPassword(password []byte) error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return checkPassword(db, password)
}

// DefaultProfile returns the profile new entries are sealed with
func (v *Vault) DefaultProfile() (crypto.Profile, error) {
	db, err := v.open()
	if err != nil {
		return crypto.Profile{}, err
	}
	defer db.Close()

	return vaultProfile(db)
}

// Put seals plaintext and stores it under name, replacing any existing
// entry of that name. A zero profile selects the vault default.
func (v *Vault) Put(ctx context.Context, name, plaintext string, password []byte, profile crypto.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !utf8.ValidString(plaintext) {
		return ErrNotText
	}

	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := checkPassword(db, password); err != nil {
		return err
	}
	if profile.Name == "" {
		if profile, err = vaultProfile(db); err != nil {
			return err
		}
	}

	blob, err := crypto.Encrypt(plaintext, string(password), profile)
	if err != nil {
		return fmt.Errorf("failed to seal %s: %w", name, err)
	}

	existing, err := db.GetEntry(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	entry := storage.NewEntry(name, profile.Name, blob, int64(len(plaintext)))
	if existing != nil {
		entry = existing.Replace(profile.Name, blob, int64(len(plaintext)))
	}
	if err := db.PutEntry(entry); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}

	logging.New("core", "Put").
		WithField("entry", name).
		WithField("profile", profile.Name).
		WithField("size", len(plaintext)).
		WithField("replaced", existing != nil).
		Debug("entry sealed")

	return db.UpdateModified()
}

// Get decrypts the entry stored under name
func (v *Vault) Get(ctx context.Context, name string, password []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	if err := checkPassword(db, password); err != nil {
		return "", err
	}
	return openEntry(db, name, password)
}

func openEntry(db *storage.Storage, name string, password []byte) (string, error) {
	entry, err := db.GetEntry(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if entry == nil {
		return "", fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	profile, err := crypto.LookupProfile(entry.Profile)
	if err != nil {
		return "", fmt.Errorf("entry %s: %w", name, err)
	}

	plaintext, err := crypto.Decrypt(entry.Blob, string(password), profile)
	if err != nil {
		logging.New("core", "Get").
			WithField("entry", name).
			WithError(err, "decrypt").
			Warn("entry failed to decrypt")
		return "", fmt.Errorf("failed to decrypt %s: %w", name, err)
	}
	return plaintext, nil
}

// Remove deletes the named entries. If any name is unknown nothing is
// removed.
func (v *Vault) Remove(ctx context.Context, names []string, password []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(names) == 0 {
		return ErrEmptyName
	}

	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := checkPassword(db, password); err != nil {
		return err
	}

	var missing []string
	for _, name := range names {
		entry, err := db.GetEntry(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if entry == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, strings.Join(missing, ", "))
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := db.DeleteEntry(name); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
		logging.New("core", "Remove").WithField("entry", name).Debug("entry removed")
	}

	return db.UpdateModified()
}

// List returns entry metadata sorted by name. No password required.
func (v *Vault) List(ctx context.Context) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	entries, err := db.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

// StatusInfo summarizes a vault without decrypting anything
type StatusInfo struct {
	Path         string
	VaultID      string
	Profile      string
	EntryCount   int
	TotalSize    int64
	LastModified time.Time
	ByProfile    map[string]int
	Entries      []storage.Entry
}

// Status returns the current status (no password required)
func (v *Vault) Status(ctx context.Context) (*StatusInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	profile, err := db.GetProfile()
	if err != nil {
		profile = "unknown"
	}
	lastModified, err := db.GetModified()
	if err != nil {
		// Not critical
		lastModified = time.Time{}
	}
	vaultID, _ := db.GetVaultID()

	entries, err := db.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	status := &StatusInfo{
		Path:         v.path,
		VaultID:      vaultID,
		Profile:      profile,
		EntryCount:   len(entries),
		LastModified: lastModified,
		ByProfile:    make(map[string]int),
		Entries:      entries,
	}
	for _, e := range entries {
		status.TotalSize += e.Size
		status.ByProfile[e.Profile]++
	}

	return status, nil
}

// ChangePassword re-seals every entry and the password check with
// newPassword. Entries keep their profiles. The rewrite is atomic.
func (v *Vault) ChangePassword(currentPassword, newPassword []byte) error {
	if len(newPassword) == 0 {
		return crypto.ErrEmptyPassword
	}

	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := checkPassword(db, currentPassword); err != nil {
		return err
	}

	profile, err := vaultProfile(db)
	if err != nil {
		return err
	}
	entries, err := db.ListEntries()
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}

	resealed := make([]storage.Entry, 0, len(entries))
	for _, entry := range entries {
		plaintext, err := openEntry(db, entry.Name, currentPassword)
		if err != nil {
			return err
		}
		entryProfile, err := crypto.LookupProfile(entry.Profile)
		if err != nil {
			return fmt.Errorf("entry %s: %w", entry.Name, err)
		}
		blob, err := crypto.Encrypt(plaintext, string(newPassword), entryProfile)
		if err != nil {
			return fmt.Errorf("failed to re-seal %s: %w", entry.Name, err)
		}
		next := entry
		next.Blob = blob
		resealed = append(resealed, next)
	}

	check, err := crypto.Encrypt(passwordCheckString, string(newPassword), profile)
	if err != nil {
		return fmt.Errorf("failed to seal password check: %w", err)
	}

	if err := db.ReplaceAll(resealed, check); err != nil {
		return fmt.Errorf("failed to store re-sealed entries: %w", err)
	}

	logging.New("core", "ChangePassword").WithField("entries", len(resealed)).Info("password changed")
	return nil
}

// Compact compacts the database to reclaim unused space.
// This is useful after removing entries or changing the password.
func (v *Vault) Compact() error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Compact()
}

// GetVaultID retrieves the vault ID from storage
func (v *Vault) GetVaultID() (string, error) {
	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetVaultID()
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (v *Vault) GetOrCreateVaultID() (string, error) {
	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetOrCreateVaultID()
}

// ReadInputFile reads a text file that must live inside the vault
// directory
func (v *Vault) ReadInputFile(path string) (string, error) {
	data, err := v.validator.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		crypto.ClearBytes(data)
		return "", fmt.Errorf("%w: %s", ErrNotText, path)
	}
	text := string(data)
	crypto.ClearBytes(data)
	return text, nil
}
