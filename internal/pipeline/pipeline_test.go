package pipeline

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/backmassage/batchren/internal/config"
	"github.com/backmassage/batchren/internal/engine"
	"github.com/backmassage/batchren/internal/instruction"
	"github.com/backmassage/batchren/internal/logging"
	"github.com/backmassage/batchren/internal/naming"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- Discover tests ---

func TestDiscover_ListsFilesSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.txt")
	touch(t, dir, "a.txt")
	touch(t, dir, ".hidden")
	mkdir(t, dir, "sub")
	touch(t, dir, "sub/c.txt")

	files, err := Discover([]string{dir}, Selection{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, basenames(files))
}

func TestDiscover_Selection(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.txt")
	touch(t, dir, ".hidden")
	mkdir(t, dir, "sub")
	touch(t, dir, "sub/c.txt")
	mkdir(t, dir, ".git")
	touch(t, dir, ".git/config")

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"recursive", Selection{Recursive: true}, []string{"a.txt", "sub/c.txt"}},
		{"hidden", Selection{Hidden: true}, []string{".hidden", "a.txt"}},
		{"recursive hidden", Selection{Recursive: true, Hidden: true}, []string{".git/config", ".hidden", "a.txt", "sub/c.txt"}},
		{"dirs", Selection{Dirs: true}, []string{"sub"}},
		{"dirs hidden", Selection{Dirs: true, Hidden: true}, []string{".git", "sub"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Discover([]string{dir}, tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_ExplicitAndGlob(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "one.jpg")
	touch(t, dir, "two.jpg")
	touch(t, dir, "notes.md")

	files, err := Discover([]string{
		filepath.Join(dir, "*.jpg"),
		filepath.Join(dir, "one.jpg"), // duplicate of a glob match
		filepath.Join(dir, "notes.md"),
	}, Selection{})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.md", "one.jpg", "two.jpg"}, basenames(files))
}

func TestDiscover_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Discover([]string{filepath.Join(dir, "missing.txt")}, Selection{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Discover([]string{filepath.Join(dir, "*.none")}, Selection{})
	assert.ErrorContains(t, err, "no match for")
}

func TestDiscover_EmptyDir(t *testing.T) {
	files, err := Discover([]string{t.TempDir()}, Selection{Recursive: true})
	require.NoError(t, err)
	assert.Empty(t, files)
}

// --- Confirm / undo / reorder ---

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES", true},
		{" yes \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(strings.NewReader(tt.input), &out, "Proceed? ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Proceed? ", out.String())
		})
	}
}

func TestWriteUndoScript(t *testing.T) {
	moves := []naming.Move{
		{Source: "a.txt", Dest: "A.txt"},
		{Source: "same", Dest: "same"},
		{Source: "it's.txt", Dest: "it is.txt"},
	}
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteUndoScript(&buf, moves, UndoHeader{RunID: "r1", At: at}))
	want := "#!/bin/sh\n" +
		"# batchren undo script\n" +
		"# run: r1\n" +
		"# created: 2024-05-06T07:08:09Z\n" +
		"set -e\n" +
		"mv -- 'it is.txt' 'it'\\''s.txt'\n" +
		"mv -- 'A.txt' 'a.txt'\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, WriteUndoScript(&buf, moves[:1], UndoHeader{Git: true}))
	assert.Contains(t, buf.String(), "git mv -- 'A.txt' 'a.txt'\n")
}

func TestEditorReorderer(t *testing.T) {
	requirePOSIX(t)
	editor := filepath.Join(t.TempDir(), "reverse")
	script := "#!/bin/sh\nsort -r \"$1\" -o \"$1\"\n"
	require.NoError(t, os.WriteFile(editor, []byte(script), 0o755))

	r := EditorReorderer{Editor: editor, Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	got, err := r.Reorder([]string{"a.txt", "b.txt", "c.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c.txt", "b.txt", "a.txt"}, got)

	got, err = r.Reorder(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = EditorReorderer{Editor: "false"}.Reorder([]string{"x"})
	assert.ErrorContains(t, err, "editor false")
}

// --- Runner tests ---

type harness struct {
	cfg    config.Config
	runner *Runner
	out    *bytes.Buffer
	logOut *bytes.Buffer
}

func newHarness(t *testing.T, dir, program string) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.Program = program
	cfg.Paths = []string{dir}
	cfg.AssumeYes = true

	var logOut, logErr bytes.Buffer
	log, err := logging.New(logging.Options{Stdout: &logOut, Stderr: &logErr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	h := &harness{cfg: cfg, out: &bytes.Buffer{}, logOut: &logOut}
	h.runner = &Runner{
		Cfg:      &h.cfg,
		Log:      log,
		RunID:    "test-run",
		In:       strings.NewReader(""),
		Out:      h.out,
		Cwd:      dir,
		Now:      func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
		SkipDeps: true,
	}
	return h
}

func TestRename_ExecutesAndWritesUndo(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "hello world.txt")
	touch(t, dir, "keep_me.txt")
	touch(t, dir, "second file.md")

	h := newHarness(t, dir, "js")
	h.cfg.UndoFile = filepath.Join(dir, "undo", "undo.sh")

	stats, err := h.runner.Rename(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RunStats{Total: 3, Planned: 2, Unchanged: 1, Renamed: 2}, stats)

	assert.FileExists(t, filepath.Join(dir, "hello_world.txt"))
	assert.FileExists(t, filepath.Join(dir, "second_file.md"))
	assert.NoFileExists(t, filepath.Join(dir, "hello world.txt"))
	assert.Contains(t, h.out.String(), "hello world.txt -> hello_world.txt\n")
	assert.NotContains(t, h.out.String(), "keep_me", "unchanged entries are not presented")

	undo, err := os.ReadFile(h.cfg.UndoFile)
	require.NoError(t, err)
	assert.Contains(t, string(undo), "# run: test-run\n")
	assert.NotContains(t, string(undo), "keep_me")

	if _, err := exec.LookPath("sh"); err == nil && runtime.GOOS != "windows" {
		require.NoError(t, exec.Command("sh", h.cfg.UndoFile).Run())
		assert.FileExists(t, filepath.Join(dir, "hello world.txt"))
		assert.FileExists(t, filepath.Join(dir, "second file.md"))
	}
}

func TestRename_DryRun(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Track One.flac")

	h := newHarness(t, dir, "cl, rsd")
	h.cfg.DryRun = true

	stats, err := h.runner.Rename(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Planned)
	assert.Equal(t, 0, stats.Renamed)
	assert.FileExists(t, filepath.Join(dir, "Track One.flac"))
	assert.Contains(t, h.out.String(), "Track One.flac -> track-one.flac")
	assert.Contains(t, h.logOut.String(), "[DRY] Would rename 1 path(s)")
}

func TestRename_Declined(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.txt")

	h := newHarness(t, dir, "cu")
	h.cfg.AssumeYes = false
	h.runner.In = strings.NewReader("n\n")

	stats, err := h.runner.Rename(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Renamed)
	assert.FileExists(t, filepath.Join(dir, "a.txt"))
	assert.Contains(t, h.out.String(), "Rename 1 path(s)? [y/N] ")
}

func TestRename_ConflictAborts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.txt")
	touch(t, dir, "b.txt")

	h := newHarness(t, dir, "p '{X}' 'same'")
	_, err := h.runner.Rename(context.Background())

	var ce *naming.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Len(t, ce.Conflicts, 1)
	assert.FileExists(t, filepath.Join(dir, "a.txt"))
	assert.FileExists(t, filepath.Join(dir, "b.txt"))
	assert.Contains(t, h.out.String(), "duplicate destination")
}

func TestRename_ProgramErrors(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.txt")

	h := newHarness(t, dir, "cl,")
	_, err := h.runner.Rename(context.Background())
	var serr *instruction.SyntaxError
	assert.ErrorAs(t, err, &serr)

	h = newHarness(t, dir, "zz")
	_, err = h.runner.Rename(context.Background())
	var lerr *instruction.LexicalError
	assert.ErrorAs(t, err, &lerr)
}

func TestRename_Reorder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.txt")
	touch(t, dir, "b.txt")

	h := newHarness(t, dir, "o")
	h.runner.Reorderer = engine.ReordererFunc(func(names []string) ([]string, error) {
		return []string{"first.txt", "second.txt"}, nil
	})

	stats, err := h.runner.Rename(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Renamed)
	assert.FileExists(t, filepath.Join(dir, "first.txt"))
	assert.FileExists(t, filepath.Join(dir, "second.txt"))
}

func TestRename_SeedIsReproducible(t *testing.T) {
	plan := func() string {
		dir := t.TempDir()
		touch(t, dir, "x")
		h := newHarness(t, dir, "p '{X}' '{rng1000000}'")
		h.cfg.DryRun = true
		h.cfg.Seed = 99
		_, err := h.runner.Rename(context.Background())
		require.NoError(t, err)
		return h.out.String()
	}
	assert.Equal(t, plan(), plan())
}

func TestSort(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "IMG_20191021_001.jpg")
	touch(t, dir, "Bahia Blanca, 21 October 2019.png")
	old := filepath.Join(dir, "old.txt")
	touch(t, dir, "old.txt")
	mtime := time.Date(2001, 2, 3, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(old, mtime, mtime))

	h := newHarness(t, dir, "")
	stats, err := h.runner.Sort(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Renamed)

	assert.FileExists(t, filepath.Join(dir, "2019", "2019-10-21", "IMG_20191021_001.jpg"))
	assert.FileExists(t, filepath.Join(dir, "2019", "2019-10-21", "Bahia Blanca, 21 October 2019.png"))
	assert.FileExists(t, filepath.Join(dir, "2001", "2001-02-03", "old.txt"))
}

// --- Helpers ---

func requirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func mkdir(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, name), 0o755); err != nil {
		t.Fatal(err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func relAll(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}
