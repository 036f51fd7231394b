package pipeline

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// EditorReorderer implements engine.Reorderer by opening the names in a
// text editor, one per line, and reading them back after it exits.
type EditorReorderer struct {
	Editor string // command, may carry arguments ("code --wait")
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Reorder implements engine.Reorderer.
func (r EditorReorderer) Reorder(names []string) ([]string, error) {
	if len(names) == 0 {
		return names, nil
	}
	argv := strings.Fields(r.Editor)
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor configured")
	}

	f, err := os.CreateTemp("", "batchren-*.txt")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	defer os.Remove(path)

	_, err = io.WriteString(f, strings.Join(names, "\n")+"\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = r.stdio()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor %s: %w", argv[0], err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(b), "\r\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}

func (r EditorReorderer) stdio() (io.Reader, io.Writer, io.Writer) {
	in, out, errOut := r.Stdin, r.Stdout, r.Stderr
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return in, out, errOut
}
