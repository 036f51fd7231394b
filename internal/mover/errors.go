package mover

import (
	"fmt"
	"regexp"

	"github.com/backmassage/batchren/internal/naming"
)

// RenameError reports the move that failed and how many moves completed
// before it.
type RenameError struct {
	Done   int
	Move   naming.Move
	Stderr string
	Err    error
}

func (e *RenameError) Error() string {
	msg := fmt.Sprintf("rename %s -> %s failed after %d successful rename(s): %v", e.Move.Source, e.Move.Dest, e.Done, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *RenameError) Unwrap() error { return e.Err }

// git mv refuses paths it does not track; those fall back to a plain rename.
var reUntracked = regexp.MustCompile(
	`(?i)not under version control|not a git repository|source directory is empty`)

// MatchUntracked reports whether git stderr says the source is not tracked.
func MatchUntracked(stderr string) bool {
	return reUntracked.MatchString(stderr)
}
