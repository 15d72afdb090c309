// Package core provides the textseal vault operations.
//
// A vault is a .textseal file holding named entries, each a text sealed
// with crypto.Encrypt under the vault password. Core operations include:
//   - Init: Create a new vault with a default cipher profile
//   - Put/Get: Seal and store text under a name, or retrieve and decrypt it
//   - Remove: Delete entries
//   - ChangePassword: Re-seal every entry with a new password
//   - Diff: Line diff between a stored entry and local text
//
// List and Status read only unencrypted entry metadata and need no password.
package core
