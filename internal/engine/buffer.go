package engine

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/backmassage/batchren/internal/naming"
)

// Buffer maps every selected path to its current proposed destination.
// Entries are sorted by source path and sources are unique, so iteration
// order (and therefore {sng} numbering) is reproducible.
type Buffer struct {
	entries []naming.Move
}

// NewBuffer builds the identity buffer over paths. Duplicates are dropped.
func NewBuffer(paths []string) *Buffer {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	b := &Buffer{entries: make([]naming.Move, len(sorted))}
	for i, p := range sorted {
		b.entries[i] = naming.Move{Source: p, Dest: p}
	}
	return b
}

// Len returns the number of entries.
func (b *Buffer) Len() int { return len(b.entries) }

// Entries returns a copy of the buffer in iteration order.
func (b *Buffer) Entries() []naming.Move { return slices.Clone(b.entries) }

// Diff returns the entries whose destination differs from their source.
func (b *Buffer) Diff() []naming.Move {
	var out []naming.Move
	for _, m := range b.entries {
		if m.Changed() {
			out = append(out, m)
		}
	}
	return out
}

// rewrite replaces the destination of every entry with f's result. f gets
// the entry index, the entry, and the current stem and extension. A result
// that would empty the stem or leave the entry's directory is an error.
func (b *Buffer) rewrite(f func(i int, m naming.Move, stem, ext string) (string, string, error)) error {
	for i, m := range b.entries {
		dir, stem, ext := naming.SplitPath(m.Dest)
		newStem, newExt, err := f(i, m, stem, ext)
		if err != nil {
			return err
		}
		if newStem == "" {
			return fmt.Errorf("%s: %w: empty name", m.Source, ErrInvalidName)
		}
		if err := checkName(newStem + newExt); err != nil {
			return fmt.Errorf("%s: %w", m.Source, err)
		}
		b.entries[i].Dest = naming.JoinPath(dir, newStem, newExt)
	}
	return nil
}

// checkName rejects base names that are empty, refer to a directory
// ("." or "..") or contain a path separator.
func checkName(base string) error {
	switch {
	case base == "", base == ".", base == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, base)
	case strings.ContainsRune(base, '/'), strings.ContainsRune(base, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, base)
	}
	return nil
}
