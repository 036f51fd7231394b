package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoReorderer is returned by Prepare when the program contains a reorder
// instruction and no Reorderer was configured.
var ErrNoReorderer = errors.New("reorder instruction requires an interactive reorderer")

// ErrInvalidName is returned by Apply when an instruction produces a name
// that is empty or would move the entry out of its directory.
var ErrInvalidName = errors.New("invalid file name")

// Logger is the subset of the logging API the engine uses.
type Logger interface {
	Warn(string, ...interface{})
	Debug(bool, string, ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Debug(bool, string, ...interface{}) {}

// Hasher produces the {sha} value for a file.
type Hasher interface {
	Hash(path string) (string, error)
}

// HasherFunc adapts a function to Hasher.
type HasherFunc func(path string) (string, error)

// Hash calls f.
func (f HasherFunc) Hash(path string) (string, error) { return f(path) }

// FileHasher hashes file contents with SHA-256 and returns lowercase hex.
type FileHasher struct{}

// Hash implements Hasher.
func (FileHasher) Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Reorderer lets the user rewrite the current names interactively. It gets
// the base names in buffer order and must return the same number of names.
type Reorderer interface {
	Reorder(names []string) ([]string, error)
}

// ReordererFunc adapts a function to Reorderer.
type ReordererFunc func(names []string) ([]string, error)

// Reorder calls f.
func (f ReordererFunc) Reorder(names []string) ([]string, error) { return f(names) }
