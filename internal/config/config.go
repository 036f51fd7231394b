// Package config holds runtime configuration: defaults, the optional YAML
// file, environment overrides, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [Load] (file and environment), then the CLI flags bound by
// [BindFlags]. Fields tagged yaml:"-" only come from the command line.
type Config struct {
	// Program and selection (set from positional args).
	Program string   `yaml:"-"`
	Paths   []string `yaml:"-"`

	// Selection.
	Recursive bool `yaml:"recursive"` // Descend into directory arguments.
	Dirs      bool `yaml:"dirs"`      // Select directories instead of files when expanding a directory.
	Hidden    bool `yaml:"hidden"`    // Include dot-files.

	// Execution.
	DryRun    bool   `yaml:"-"`
	AssumeYes bool   `yaml:"assume_yes"` // Skip the confirmation prompt.
	Git       bool   `yaml:"git"`        // Rename with "git mv".
	UndoFile  string `yaml:"undo_file"`  // Write an undo script here when set.
	Editor    string `yaml:"editor"`     // Command used by the reorder instruction.
	Seed      int64  `yaml:"-"`          // Random generator seed; -1 picks one at random.

	// Display and logging.
	Verbose   bool      `yaml:"verbose"`
	ColorMode ColorMode `yaml:"color"`
	LogFile   string    `yaml:"log_file"`
}

// DefaultConfig returns the settings used when neither a config file nor
// flags say otherwise.
func DefaultConfig() Config {
	return Config{
		Editor:    "vi",
		Seed:      -1,
		ColorMode: ColorAuto,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/batchren/config.yaml, falling back
// to the platform user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "batchren", "config.yaml")
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the file-backed settings to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies BATCHREN_* variables, EDITOR and NO_COLOR.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("BATCHREN_GIT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BATCHREN_GIT: invalid boolean %q", v)
		}
		c.Git = b
	}
	if v := os.Getenv("BATCHREN_UNDO"); v != "" {
		c.UndoFile = v
	}
	if v := os.Getenv("BATCHREN_EDITOR"); v != "" {
		c.Editor = v
	} else if v := os.Getenv("EDITOR"); v != "" {
		c.Editor = v
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		c.ColorMode = ColorNever
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and value ranges.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if c.Recursive && c.Dirs {
		return errors.New("--dirs cannot be combined with --recursive (nested directories would be renamed under moving parents)")
	}
	if c.Seed < -1 {
		return fmt.Errorf("invalid seed %d (use a non-negative value)", c.Seed)
	}
	if strings.TrimSpace(c.Editor) == "" {
		return errors.New("editor must not be empty")
	}
	if c.UndoFile != "" {
		if fi, err := os.Stat(c.UndoFile); err == nil && fi.IsDir() {
			return fmt.Errorf("undo file %s is a directory", c.UndoFile)
		}
	}
	return nil
}
