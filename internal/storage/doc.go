// Package storage provides the BBolt database interface for textseal.
//
// Database structure uses two buckets:
//   - config: default profile, sealed password check, vault id, timestamps
//   - entries: entry name -> JSON record holding the sealed blob
//
// Entry names, sizes and profiles are stored in the clear so that
// textseal ls and textseal status work without a password. Only the
// blob is encrypted.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
