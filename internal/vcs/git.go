// Package vcs initializes version control in generated projects. All git
// work is delegated to the git binary; failures are reported to the caller,
// which treats them as warnings rather than aborting a completed scaffold.
package vcs

import (
	"fmt"
	"os/exec"
	"strings"
)

// Init creates a git repository in dir and records an initial commit
// containing the generated files.
func Init(dir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	steps := [][]string{
		{"init", "--quiet"},
		{"add", "--all"},
		{"commit", "--quiet", "--message", "Initial commit"},
	}
	for _, args := range steps {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// ensureGit verifies the git binary is available.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is not installed or not in PATH")
	}
	return nil
}
