package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BATCHREN_GIT", "BATCHREN_UNDO", "BATCHREN_EDITOR", "EDITOR", "NO_COLOR"} {
		t.Setenv(k, "")
	}
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/photos/2019", "/photos/2019"},
		{"single trailing slash", "/photos/2019/", "/photos/2019"},
		{"multiple trailing slashes", "/photos/2019///", "/photos/2019"},
		{"root path", "/", "/"},
		{"relative path", "inbox", "inbox"},
		{"relative with slash", "inbox/", "inbox"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	undoDir := t.TempDir()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"color always", func(c *Config) { c.ColorMode = ColorAlways }, false},
		{"empty color", func(c *Config) { c.ColorMode = "" }, true},
		{"unknown color", func(c *Config) { c.ColorMode = "rainbow" }, true},
		{"dirs", func(c *Config) { c.Dirs = true }, false},
		{"recursive dirs", func(c *Config) { c.Dirs, c.Recursive = true, true }, true},
		{"seed zero", func(c *Config) { c.Seed = 0 }, false},
		{"negative seed", func(c *Config) { c.Seed = -2 }, true},
		{"blank editor", func(c *Config) { c.Editor = "  " }, true},
		{"undo into directory", func(c *Config) { c.UndoFile = undoDir }, true},
		{"undo file", func(c *Config) { c.UndoFile = filepath.Join(undoDir, "undo.sh") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recursive: true\ngit: false\ncolor: always\neditor: nano\n"), 0o644))

	t.Setenv("BATCHREN_GIT", "1")
	t.Setenv("EDITOR", "emacs")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Recursive)
	assert.True(t, cfg.Git, "env overrides file")
	assert.Equal(t, "emacs", cfg.Editor)
	assert.Equal(t, ColorNever, cfg.ColorMode)

	t.Setenv("BATCHREN_EDITOR", "hx")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hx", cfg.Editor, "BATCHREN_EDITOR wins over EDITOR")
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recursive: [\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")

	t.Setenv("BATCHREN_GIT", "maybe")
	_, err = Load("")
	assert.ErrorContains(t, err, "BATCHREN_GIT")
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Hidden = true
	cfg.UndoFile = "/tmp/undo.sh"
	cfg.Program = "cl" // not persisted
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, got.Hidden)
	assert.Equal(t, "/tmp/undo.sh", got.UndoFile)
	assert.Empty(t, got.Program)
}

func TestBindFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg Config)
	}{
		{"short flags", []string{"-d", "-y", "-r", "-v", "-u", "undo.sh", "-l", "run.log"}, func(t *testing.T, cfg Config) {
			assert.True(t, cfg.DryRun)
			assert.True(t, cfg.AssumeYes)
			assert.True(t, cfg.Recursive)
			assert.True(t, cfg.Verbose)
			assert.Equal(t, "undo.sh", cfg.UndoFile)
			assert.Equal(t, "run.log", cfg.LogFile)
		}},
		{"bare color", []string{"--color"}, func(t *testing.T, cfg Config) {
			assert.Equal(t, ColorAlways, cfg.ColorMode)
		}},
		{"color value", []string{"--color=never"}, func(t *testing.T, cfg Config) {
			assert.Equal(t, ColorNever, cfg.ColorMode)
		}},
		{"no-color wins", []string{"--color=always", "--no-color"}, func(t *testing.T, cfg Config) {
			assert.Equal(t, ColorNever, cfg.ColorMode)
		}},
		{"seed", []string{"--seed", "42", "--git", "--hidden", "--dirs"}, func(t *testing.T, cfg Config) {
			assert.Equal(t, int64(42), cfg.Seed)
			assert.True(t, cfg.Git)
			assert.True(t, cfg.Hidden)
			assert.True(t, cfg.Dirs)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			var n Negated
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			BindFlags(fs, &cfg, &n)
			require.NoError(t, fs.Parse(tt.args))
			ApplyNegated(&cfg, &n)
			tt.check(t, cfg)
		})
	}
}

func TestBindFlagsRejectsBadColor(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	BindFlags(fs, &cfg, &Negated{})
	assert.Error(t, fs.Parse([]string{"--color=rainbow"}))
}

func TestApplyChanged(t *testing.T) {
	parsed := DefaultConfig()
	var n Negated
	fs := pflag.NewFlagSet("root", pflag.ContinueOnError)
	BindFlags(fs, &parsed, &n)
	fs.String("config", "", "")
	require.NoError(t, fs.Parse([]string{"--yes", "--no-color", "--seed=5", "--config=x.yaml"}))

	loaded := DefaultConfig()
	loaded.Recursive = true // from file, flag not given
	loaded.Editor = "nano"
	require.NoError(t, ApplyChanged(&loaded, fs))

	assert.True(t, loaded.AssumeYes)
	assert.True(t, loaded.Recursive)
	assert.Equal(t, "nano", loaded.Editor)
	assert.Equal(t, int64(5), loaded.Seed)
	assert.Equal(t, ColorNever, loaded.ColorMode)
}
