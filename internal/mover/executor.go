package mover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/backmassage/batchren/internal/naming"
)

// Logger is the subset of the logging API the mover uses.
type Logger interface {
	Debug(bool, string, ...interface{})
}

// Options controls Execute.
type Options struct {
	Git     bool // use "git mv" instead of os.Rename
	Verbose bool
	Log     Logger
}

// Result counts what Execute did.
type Result struct {
	Renamed   int
	Fallbacks int // git mv attempts that fell back to os.Rename
}

// ExecResult holds the outcome of a single git invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute renames every move in order. Missing parent directories of the
// destination are created. ctx is checked before each move; on
// cancellation or failure the returned error is a *RenameError.
func Execute(ctx context.Context, moves []naming.Move, opts Options) (Result, error) {
	var res Result
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			return res, &RenameError{Done: res.Renamed, Move: m, Err: err}
		}
		if err := os.MkdirAll(filepath.Dir(m.Dest), 0o755); err != nil {
			return res, &RenameError{Done: res.Renamed, Move: m, Err: err}
		}

		if opts.Git {
			r := GitMove(ctx, m)
			switch {
			case r.Err == nil:
				res.Renamed++
				logDone(opts, m, "git mv")
				continue
			case !MatchUntracked(r.Stderr):
				return res, &RenameError{Done: res.Renamed, Move: m, Stderr: r.Stderr, Err: r.Err}
			}
			if opts.Log != nil {
				opts.Log.Debug(opts.Verbose, "git mv refused %s (%s), renaming directly", m.Source, r.Stderr)
			}
			res.Fallbacks++
		}

		if err := rename(m); err != nil {
			return res, &RenameError{Done: res.Renamed, Move: m, Err: err}
		}
		res.Renamed++
		logDone(opts, m, "rename")
	}
	return res, nil
}

func logDone(opts Options, m naming.Move, how string) {
	if opts.Log != nil {
		opts.Log.Debug(opts.Verbose, "%s %s -> %s", how, m.Source, m.Dest)
	}
}

// rename refuses to overwrite, which os.Rename would do silently on Unix.
// A case-only rename of the same file is allowed through.
func rename(m naming.Move) error {
	if _, err := os.Lstat(m.Dest); err == nil && !m.CaseOnly() {
		return fmt.Errorf("destination %s: %w", m.Dest, os.ErrExist)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Rename(m.Source, m.Dest)
}

// GitMove runs "git mv" from the source's directory so the repository is
// found regardless of the process working directory. Stderr is captured
// for classification.
func GitMove(ctx context.Context, m naming.Move) ExecResult {
	src, err := filepath.Abs(m.Source)
	if err != nil {
		return ExecResult{Err: err}
	}
	dst, err := filepath.Abs(m.Dest)
	if err != nil {
		return ExecResult{Err: err}
	}

	cmd := exec.CommandContext(ctx, "git", "mv", "--", src, dst)
	cmd.Dir = filepath.Dir(src)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err = cmd.Run()
	return ExecResult{
		Stderr: strings.TrimSpace(stderrBuf.String()),
		Err:    err,
	}
}
