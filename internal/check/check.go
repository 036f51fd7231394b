// Package check provides environment diagnostics (the check command) and
// pre-run dependency validation (CheckDeps) for git and the reorder editor.
package check

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/batchren/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrGitNotFound    = errors.New("git not found on PATH (needed for --git)")
	ErrNotGitWorkTree = errors.New("current directory is not inside a git work tree")
	ErrEditorNotFound = errors.New("editor not found on PATH (needed for the reorder instruction)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Needs lists which optional tools the current run uses.
type Needs struct {
	Git    bool
	Editor bool
}

// RunCheck prints the availability of git and the configured editor plus
// the config file location. Informational only; it does not stop on
// failure.
func RunCheck(cfg *config.Config, configPath string, log Logger) {
	log.Info("=== System Check ===")

	checkGit(log)
	checkEditor(cfg.Editor, log)
	checkConfig(configPath, log)
}

// checkGit verifies git is on PATH and logs its version string.
func checkGit(log Logger) {
	if _, err := exec.LookPath("git"); err != nil {
		log.Warn("git not found (--git unavailable)")
		return
	}
	out, err := exec.Command("git", "--version").Output()
	if err != nil {
		log.Warn("git found but --version failed: %v", err)
		return
	}
	log.Success("%s", strings.TrimSpace(string(out)))
	if runSilent("git", "rev-parse", "--is-inside-work-tree") {
		log.Info("Current directory is inside a git work tree")
	}
}

// checkEditor resolves the editor command used by the reorder instruction.
func checkEditor(editor string, log Logger) {
	path, err := lookEditor(editor)
	if err != nil {
		log.Warn("Editor %q not found (reorder unavailable)", editor)
		return
	}
	log.Success("Editor: %s", path)
}

// checkConfig reports whether the config file exists.
func checkConfig(path string, log Logger) {
	if path == "" {
		log.Warn("No config directory available")
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Info("Config: %s (not present, using defaults)", path)
		return
	}
	log.Success("Config: %s", path)
}

// CheckDeps is the pre-run validation: it verifies that the tools the run
// will invoke are present. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config, needs Needs) error {
	if needs.Git {
		if _, err := exec.LookPath("git"); err != nil {
			return ErrGitNotFound
		}
		if !runSilent("git", "rev-parse", "--is-inside-work-tree") {
			return ErrNotGitWorkTree
		}
	}
	if needs.Editor {
		if _, err := lookEditor(cfg.Editor); err != nil {
			return ErrEditorNotFound
		}
	}
	return nil
}

// --- internal helpers ---

// lookEditor resolves the first word of an editor command ("code --wait").
func lookEditor(editor string) (string, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return "", exec.ErrNotFound
	}
	return exec.LookPath(fields[0])
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
