package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // profile, password check, timestamps
	EntriesBucket = []byte("entries") // name -> JSON Entry with sealed blob
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigProfile  = []byte("profile")
	ConfigCheck    = []byte("check")
	ConfigVaultID  = []byte("vault_id")
)

const schemaVersion = "1"

// Storage provides BBolt-based storage for textseal
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a textseal database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Initialize creates the bucket structure and records the default profile
func (s *Storage) Initialize(profile string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, EntriesBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte(schemaVersion)); err != nil {
			return err
		}
		if err := config.Put(ConfigProfile, []byte(profile)); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

func (s *Storage) getConfig(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(key)
		if data == nil {
			return fmt.Errorf("%s not found", key)
		}
		// Make a copy since the slice is only valid during the transaction
		value = append([]byte(nil), data...)
		return nil
	})
	return value, err
}

func (s *Storage) putConfig(key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		return config.Put(key, value)
	})
}

// SetProfile stores the default profile name
func (s *Storage) SetProfile(name string) error {
	return s.putConfig(ConfigProfile, []byte(name))
}

// GetProfile retrieves the default profile name
func (s *Storage) GetProfile() (string, error) {
	data, err := s.getConfig(ConfigProfile)
	return string(data), err
}

// SetCheck stores the sealed password-check blob
func (s *Storage) SetCheck(blob string) error {
	return s.putConfig(ConfigCheck, []byte(blob))
}

// GetCheck retrieves the sealed password-check blob
func (s *Storage) GetCheck() (string, error) {
	data, err := s.getConfig(ConfigCheck)
	return string(data), err
}

// UpdateModified updates the last modified timestamp
func (s *Storage) UpdateModified() error {
	modified, _ := time.Now().MarshalBinary()
	return s.putConfig(ConfigModified, modified)
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	var modified time.Time
	data, err := s.getConfig(ConfigModified)
	if err != nil {
		return modified, err
	}
	err = modified.UnmarshalBinary(data)
	return modified, err
}

// GetVaultID retrieves the vault ID from config bucket
func (s *Storage) GetVaultID() (string, error) {
	data, err := s.getConfig(ConfigVaultID)
	return string(data), err
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	vaultID = uuid.NewString()
	if err := s.putConfig(ConfigVaultID, []byte(vaultID)); err != nil {
		return "", err
	}
	return vaultID, nil
}

// PutEntry stores or replaces an entry
func (s *Storage) PutEntry(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		entries := tx.Bucket(EntriesBucket)
		if entries == nil {
			return fmt.Errorf("entries bucket not found")
		}
		return entries.Put([]byte(entry.Name), data)
	})
}

// GetEntry returns a single entry, or nil if it does not exist
func (s *Storage) GetEntry(name string) (*Entry, error) {
	var entry *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		entries := tx.Bucket(EntriesBucket)
		if entries == nil {
			return fmt.Errorf("entries bucket not found")
		}
		data := entries.Get([]byte(name))
		if data == nil {
			return nil
		}
		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	return entry, err
}

// DeleteEntry removes an entry and reports whether it existed
func (s *Storage) DeleteEntry(name string) (bool, error) {
	var existed bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		entries := tx.Bucket(EntriesBucket)
		if entries == nil {
			return fmt.Errorf("entries bucket not found")
		}
		existed = entries.Get([]byte(name)) != nil
		return entries.Delete([]byte(name))
	})
	return existed, err
}

// ListEntries returns all entries sorted by name
func (s *Storage) ListEntries() ([]Entry, error) {
	var list []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		entries := tx.Bucket(EntriesBucket)
		if entries == nil {
			return fmt.Errorf("entries bucket not found")
		}
		return entries.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("corrupt entry %s: %w", k, err)
			}
			list = append(list, entry)
			return nil
		})
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, err
}

// ReplaceAll rewrites every entry and the password check in a single
// transaction. Either everything is replaced or nothing is.
func (s *Storage) ReplaceAll(list []Entry, check string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(EntriesBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to clear entries: %w", err)
		}
		entries, err := tx.CreateBucket(EntriesBucket)
		if err != nil {
			return fmt.Errorf("failed to recreate entries: %w", err)
		}
		for _, entry := range list {
			data, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			if err := entries.Put([]byte(entry.Name), data); err != nil {
				return err
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		if err := config.Put(ConfigCheck, []byte(check)); err != nil {
			return err
		}
		modified, _ := time.Now().MarshalBinary()
		return config.Put(ConfigModified, modified)
	})
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting entries to reclaim disk space.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	if err := bolt.Compact(dst, s.db, 0); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	s.db, err = bolt.Open(srcPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}
