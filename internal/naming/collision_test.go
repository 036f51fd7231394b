package naming

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectConflicts(t *testing.T) {
	onDisk := map[string]bool{"taken.txt": true, "a.txt": true, "b.txt": true, "Photo.jpg": true}
	exists := func(p string) bool { return onDisk[p] }

	tests := []struct {
		name  string
		moves []Move
		want  []ConflictKind
	}{
		{"clean", []Move{{"a.txt", "x.txt"}, {"b.txt", "y.txt"}}, nil},
		{"unchanged ignored", []Move{{"a.txt", "a.txt"}}, nil},
		{"duplicate", []Move{{"a.txt", "x.txt"}, {"b.txt", "x.txt"}}, []ConflictKind{ConflictDuplicate}},
		{"exists", []Move{{"a.txt", "taken.txt"}}, []ConflictKind{ConflictExists}},
		{"chain", []Move{{"a.txt", "b.txt"}, {"b.txt", "c.txt"}}, []ConflictKind{ConflictChain}},
		{"swap", []Move{{"a.txt", "b.txt"}, {"b.txt", "a.txt"}}, []ConflictKind{ConflictChain, ConflictChain}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectConflicts(tt.moves, exists)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d conflicts (%v), want %d", len(got), got, len(tt.want))
			}
			for i, c := range got {
				if c.Kind != tt.want[i] {
					t.Errorf("conflict %d kind = %v, want %v", i, c.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestConflictError(t *testing.T) {
	var err error = &ConflictError{Conflicts: DetectConflicts(
		[]Move{{"a", "x"}, {"b", "x"}}, nil)}
	var ce *ConflictError
	if !errors.As(err, &ce) || len(ce.Conflicts) != 1 {
		t.Fatalf("errors.As failed: %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "1 conflicting rename") || !strings.Contains(msg, "b -> x: duplicate destination (a)") {
		t.Errorf("message = %q", msg)
	}
}

func onDiskExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// caseSensitiveDir reports whether dir tells "a.txt" and "A.txt" apart.
func caseSensitiveDir(t *testing.T, dir string) bool {
	t.Helper()
	probe := filepath.Join(dir, "Case.tmp")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(probe)
	return !onDiskExists(filepath.Join(dir, "case.tmp"))
}

func TestDetectConflictsCaseOnly(t *testing.T) {
	dir := t.TempDir()
	upper := filepath.Join(dir, "Photo.jpg")
	lower := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(upper, []byte("upper"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("same file", func(t *testing.T) {
		if got := DetectConflicts([]Move{{upper, lower}}, onDiskExists); len(got) != 0 {
			t.Errorf("case-only rename of one file flagged: %v", got)
		}
	})

	t.Run("distinct files", func(t *testing.T) {
		if !caseSensitiveDir(t, dir) {
			t.Skip("filesystem is case-insensitive")
		}
		if err := os.WriteFile(lower, []byte("lower"), 0o644); err != nil {
			t.Fatal(err)
		}
		got := DetectConflicts([]Move{{upper, lower}}, onDiskExists)
		if len(got) != 1 || got[0].Kind != ConflictExists {
			t.Fatalf("got %v, want one %v", got, ConflictExists)
		}
	})
}
