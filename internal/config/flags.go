package config

// This file binds CLI flags onto a Config. Flags are registered on a pflag
// set owned by the cobra root command; negated flags (--no-color) are
// applied after parsing so file and env settings hold unless the user
// passes the flag.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Negated holds flags that are applied after Parse.
type Negated struct {
	NoColor bool
}

// BindFlags registers the run flags on fs, writing into cfg. Values already
// in cfg become the flag defaults.
func BindFlags(fs *pflag.FlagSet, cfg *Config, n *Negated) {
	defineSelectionFlags(fs, cfg)
	defineExecutionFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, n)
}

// defineSelectionFlags registers -r/--recursive, --dirs, --hidden.
func defineSelectionFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.Recursive, "recursive", "r", cfg.Recursive, "Descend into directory arguments")
	fs.BoolVar(&cfg.Dirs, "dirs", cfg.Dirs, "Select directories instead of files inside directory arguments")
	fs.BoolVar(&cfg.Hidden, "hidden", cfg.Hidden, "Include hidden entries")
}

// defineExecutionFlags registers dry-run, yes, git, undo and seed.
func defineExecutionFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", cfg.DryRun, "Show the plan without renaming")
	fs.BoolVarP(&cfg.AssumeYes, "yes", "y", cfg.AssumeYes, "Do not ask for confirmation")
	fs.BoolVar(&cfg.Git, "git", cfg.Git, "Rename with git mv")
	fs.StringVarP(&cfg.UndoFile, "undo", "u", cfg.UndoFile, "Write an undo script to this file")
	fs.StringVar(&cfg.Editor, "editor", cfg.Editor, "Editor used by the reorder instruction")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for {rng} (-1 for random)")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, n *Negated) {
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color", "Colored logs: auto | always | never")
	fs.Lookup("color").NoOptDefVal = string(ColorAlways)
	fs.BoolVar(&n.NoColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append logs to file")
}

// ApplyNegated copies negated flag values into cfg.
func ApplyNegated(cfg *Config, n *Negated) {
	if n.NoColor {
		cfg.ColorMode = ColorNever
	}
}

// ApplyChanged replays every flag the user set on changed onto dst, so
// explicit flags win over file and environment settings loaded after
// parsing. Flags unknown to BindFlags (such as --config) are ignored.
func ApplyChanged(dst *Config, changed *pflag.FlagSet) error {
	var n Negated
	fs := pflag.NewFlagSet("overlay", pflag.ContinueOnError)
	BindFlags(fs, dst, &n)

	var err error
	changed.Visit(func(f *pflag.Flag) {
		if err != nil || fs.Lookup(f.Name) == nil {
			return
		}
		if e := fs.Set(f.Name, f.Value.String()); e != nil {
			err = fmt.Errorf("--%s: %w", f.Name, e)
		}
	})
	ApplyNegated(dst, &n)
	return err
}

// pflag.Value adapter so the ColorMode enum can be used with fs.Var.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
