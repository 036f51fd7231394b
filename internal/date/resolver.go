package date

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Source identifies where a resolved date came from.
type Source int

const (
	SourceFilename Source = iota
	SourceModTime
)

func (s Source) String() string {
	switch s {
	case SourceFilename:
		return "filename"
	case SourceModTime:
		return "mtime"
	}
	return "unknown"
}

// Stamp is a resolved date together with its origin.
type Stamp struct {
	Source Source
	Date   Date
}

// Resolver finds a date for a filesystem path.
type Resolver interface {
	Resolve(path string) (Stamp, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string) (Stamp, bool)

// Resolve calls f(path).
func (f ResolverFunc) Resolve(path string) (Stamp, bool) { return f(path) }

// Chain tries each resolver in order and returns the first hit.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(path string) (Stamp, bool) {
	for _, r := range c {
		if st, ok := r.Resolve(path); ok {
			return st, true
		}
	}
	return Stamp{}, false
}

// FilenameResolver recognizes a date in the path's base name.
type FilenameResolver struct{}

// Resolve implements Resolver.
func (FilenameResolver) Resolve(path string) (Stamp, bool) {
	d, ok := Find(filepath.Base(path))
	if !ok {
		return Stamp{}, false
	}
	return Stamp{Source: SourceFilename, Date: d}, true
}

// ModTimeResolver uses the file's modification time. Stat defaults to
// os.Stat.
type ModTimeResolver struct {
	Stat func(string) (fs.FileInfo, error)
}

// Resolve implements Resolver.
func (r ModTimeResolver) Resolve(path string) (Stamp, bool) {
	stat := r.Stat
	if stat == nil {
		stat = os.Stat
	}
	fi, err := stat(path)
	if err != nil {
		return Stamp{}, false
	}
	t := fi.ModTime()
	return Stamp{
		Source: SourceModTime,
		Date:   Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()},
	}, true
}
