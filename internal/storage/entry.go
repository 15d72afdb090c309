package storage

import (
	"time"
)

// Entry is one named sealed text in the vault. Blob is the base64
// output of crypto.Encrypt under Profile; Size is the plaintext length.
type Entry struct {
	Name     string    `json:"name"`
	Profile  string    `json:"profile"`
	Blob     string    `json:"blob"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// NewEntry creates an entry stamped with the current time
func NewEntry(name, profile, blob string, size int64) Entry {
	now := time.Now()
	if size < 0 {
		size = 0
	}
	return Entry{
		Name:     name,
		Profile:  profile,
		Blob:     blob,
		Size:     size,
		Created:  now,
		Modified: now,
	}
}

// Replace returns a copy of e carrying a new blob, keeping its creation time
func (e Entry) Replace(profile, blob string, size int64) Entry {
	next := NewEntry(e.Name, profile, blob, size)
	next.Created = e.Created
	return next
}
