package naming

import (
	"os"
	"path/filepath"
	"strings"
)

// Move is one entry of a rename plan.
type Move struct {
	Source string
	Dest   string
}

// Changed reports whether the move actually renames anything.
func (m Move) Changed() bool { return m.Source != m.Dest }

// CaseOnly reports whether the move only changes letter case and both
// paths name the same file on disk. On a case-sensitive filesystem "a.txt"
// and "A.txt" are distinct files, so the names alone are not enough.
func (m Move) CaseOnly() bool {
	if !m.Changed() || !strings.EqualFold(m.Source, m.Dest) {
		return false
	}
	return SameFile(m.Source, m.Dest)
}

// SameFile reports whether a and b resolve to the same file. Missing paths
// are never the same.
func SameFile(a, b string) bool {
	fa, err := os.Lstat(a)
	if err != nil {
		return false
	}
	fb, err := os.Lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

// SplitName splits a base name into stem and extension. The extension keeps
// its leading dot. A leading dot alone (".bashrc") does not start an
// extension.
func SplitName(base string) (stem, ext string) {
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return base, ""
	}
	return base[:i], base[i:]
}

// SplitPath splits a path into directory, stem and extension.
func SplitPath(path string) (dir, stem, ext string) {
	dir, base := filepath.Split(path)
	stem, ext = SplitName(base)
	return dir, stem, ext
}

// JoinPath is the inverse of SplitPath.
func JoinPath(dir, stem, ext string) string {
	return dir + stem + ext
}

// NormalizeExt turns a user-supplied extension ("txt", ".txt") into the
// dotted form SplitName returns. An empty input yields no extension.
func NormalizeExt(ext string) string {
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}
