package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/batchren/internal/naming"
)

// UndoHeader identifies the run an undo script reverts.
type UndoHeader struct {
	RunID string
	At    time.Time
	Git   bool // revert with "git mv"
}

// WriteUndoScript writes a POSIX shell script that moves every changed
// entry back, last rename first.
func WriteUndoScript(w io.Writer, moves []naming.Move, h UndoHeader) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#!/bin/sh")
	fmt.Fprintln(bw, "# batchren undo script")
	fmt.Fprintf(bw, "# run: %s\n", h.RunID)
	fmt.Fprintf(bw, "# created: %s\n", h.At.Format(time.RFC3339))
	fmt.Fprintln(bw, "set -e")

	mv := "mv"
	if h.Git {
		mv = "git mv"
	}
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]
		if !m.Changed() {
			continue
		}
		fmt.Fprintf(bw, "%s -- %s %s\n", mv, shellQuote(m.Dest), shellQuote(m.Source))
	}
	return bw.Flush()
}

// WriteUndoFile writes the undo script to path and makes it executable.
func WriteUndoFile(path string, moves []naming.Move, h UndoHeader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return err
	}
	if err := WriteUndoScript(f, moves, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// shellQuote single-quotes s for sh; embedded quotes become '\''.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
