package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Selection controls how directory arguments are expanded.
type Selection struct {
	Recursive bool // walk directory arguments instead of listing them
	Dirs      bool // select directories instead of files
	Hidden    bool // include names starting with "."
}

// Discover turns command-line arguments into the sorted, de-duplicated set
// of paths to rename. Glob patterns are expanded; a directory argument
// contributes its entries; any other existing path is taken as given.
func Discover(args []string, sel Selection) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		matches, err := expandArg(arg)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			fi, err := os.Lstat(m)
			if err != nil {
				return nil, err
			}
			if !fi.IsDir() {
				add(m)
				continue
			}
			entries, err := expandDir(m, sel)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				add(e)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// expandArg returns arg itself when it exists, otherwise its glob matches.
func expandArg(arg string) ([]string, error) {
	if _, err := os.Lstat(arg); err == nil || !strings.ContainsAny(arg, "*?[") {
		return []string{arg}, nil
	}
	matches, err := filepath.Glob(arg)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no match for %q", arg)
	}
	return matches, nil
}

// expandDir lists (or walks) dir and keeps the entries sel asks for.
func expandDir(dir string, sel Selection) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if !sel.Hidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() == sel.Dirs {
			out = append(out, path)
		}
		if d.IsDir() && !sel.Recursive {
			return filepath.SkipDir
		}
		return nil
	})
	return out, err
}
