// Package tsort plans moving files into date folders:
// <root>/<YYYY>/<YYYY-MM-DD>/<name>. The date comes from a date.Resolver,
// normally the name itself and then the modification time.
package tsort

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/batchren/internal/date"
	"github.com/backmassage/batchren/internal/naming"
)

// DefaultResolver tries the file name first, then the mtime.
func DefaultResolver() date.Resolver {
	return date.Chain{date.FilenameResolver{}, date.ModTimeResolver{}}
}

// Entry is a planned move together with the date that placed it.
type Entry struct {
	naming.Move
	Stamp date.Stamp
}

// Result is the output of Plan.
type Result struct {
	Entries    []Entry  // files that move, in input order
	InPlace    int      // files already in their date folder
	Unresolved []string // files with no date
}

// Moves returns the plan moves without stamps.
func (r Result) Moves() []naming.Move {
	out := make([]naming.Move, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Move
	}
	return out
}

// Folder returns the date folder for d under root.
func Folder(root string, d date.Date) string {
	return filepath.Join(root, fmt.Sprintf("%04d", d.Year), d.String())
}

// Plan resolves a date for every file and computes its destination.
func Plan(root string, files []string, r date.Resolver) Result {
	var res Result
	for _, f := range files {
		st, ok := r.Resolve(f)
		if !ok || !st.Date.Valid() {
			res.Unresolved = append(res.Unresolved, f)
			continue
		}
		m := naming.Move{Source: f, Dest: filepath.Join(Folder(root, st.Date), filepath.Base(f))}
		if !m.Changed() {
			res.InPlace++
			continue
		}
		res.Entries = append(res.Entries, Entry{Move: m, Stamp: st})
	}
	return res
}
