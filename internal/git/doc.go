// Package git reports how a textseal vault directory sits inside a git
// working tree.
//
// Checks performed:
//   - Whether .textseal is tracked by git (it is safe to commit)
//   - Whether the dotenv file is tracked by git (it should not be)
//   - Whether the dotenv file is in .gitignore (it should be)
//
// The dotenv file may carry TEXTSEAL_PASSWORD, which would unlock every
// entry in a committed vault.
package git
