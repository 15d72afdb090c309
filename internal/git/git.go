package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Status contains git integration status for a vault directory
type Status struct {
	IsRepo       bool
	VaultTracked bool
	// EnvFile is empty when no dotenv file exists in the directory
	EnvFile    string
	EnvTracked bool
	EnvIgnored bool
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	return cmd.Run() == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	// exit code 0 means ignored
	return cmd.Run() == nil
}

// Check inspects vaultFile and envFile, both relative to workDir
func Check(workDir, vaultFile, envFile string) *Status {
	status := &Status{}
	if !IsGitRepo(workDir) {
		return status
	}
	status.IsRepo = true
	status.VaultTracked = IsTracked(workDir, vaultFile)

	if envFile != "" {
		if _, err := os.Stat(filepath.Join(workDir, envFile)); err == nil {
			status.EnvFile = envFile
			status.EnvTracked = IsTracked(workDir, envFile)
			status.EnvIgnored = IsIgnored(workDir, envFile)
		}
	}
	return status
}

// Format renders status for display. It returns "" outside a git repo.
func (s *Status) Format(vaultFile string) string {
	if !s.IsRepo {
		return ""
	}

	var b strings.Builder
	b.WriteString("\nGit:\n")
	if s.VaultTracked {
		b.WriteString("   ok: " + vaultFile + " is tracked by git\n")
	} else {
		b.WriteString("   note: " + vaultFile + " not tracked (run: git add " + vaultFile + ")\n")
	}

	if s.EnvFile == "" {
		return b.String()
	}
	switch {
	case s.EnvTracked:
		b.WriteString("   error: " + s.EnvFile + " is tracked by git (run: git rm --cached " + s.EnvFile + ")\n")
	case !s.EnvIgnored:
		b.WriteString("   warning: " + s.EnvFile + " not in .gitignore\n")
	default:
		b.WriteString("   ok: " + s.EnvFile + " is ignored\n")
	}
	return b.String()
}
