package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/batchren/internal/check"
	"github.com/backmassage/batchren/internal/config"
	"github.com/backmassage/batchren/internal/display"
	"github.com/backmassage/batchren/internal/pipeline"
)

const programHelp = `Instructions (comma separated):
  s                     sanitize (keep letters and digits, single spaces)
  cl cu ct cs           lower, upper, title, sentence case
  jc js jk              join words camelCase, snake_case, kebab-case
  sc ss sk              split camelCase, snake_case, kebab-case into words
  r '<a>' '<b>'         replace text
  r<X><Y>               replace separator X with Y (d dash, p period,
                        s space, u underscore), e.g. rsu
  p '<match>' '<repl>'  pattern match: {A} letters, {N} digits, {X} any,
                        {D} date; replace with {1}.. captures, {sng},
                        {rng}, {sha}
  i '<text>' <n|end>    insert text at a position
  d <from> <to|end>     delete a range
  ea '<ext>'            set extension
  er                    remove extension
  o                     reorder names in $EDITOR`

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "batchren [flags] <program> <paths...>",
		Short: "Rename files in bulk with a small rule language",
		Long: `batchren applies a program of rename instructions to every selected
path, shows the resulting plan, and renames after confirmation.

` + programHelp,
		Example: `  batchren 'ct, js' *.txt
  batchren -r "p '{X} - {N}' '{2} {1}'" music/
  batchren -d "p '{X}' 'photo-{sng,3}'" holiday/`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: a.runRename,
	}

	pf := root.PersistentFlags()
	config.BindFlags(pf, &a.flags, &a.negated)
	pf.StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/batchren/config.yaml)")

	root.AddCommand(a.sortCmd(), a.checkCmd(), a.configCmd(), a.versionCmd())
	return root
}

func (a *app) runRename(_ *cobra.Command, args []string) error {
	a.cfg.Program = args[0]
	a.cfg.Paths = args[1:]

	if a.cfg.DryRun {
		a.log.Warn("DRY RUN, nothing will be renamed")
	}
	ctx, cancel := a.signalContext()
	defer cancel()

	_, err := a.runner().Rename(ctx)
	return err
}

func (a *app) runner() *pipeline.Runner {
	return &pipeline.Runner{
		Cfg:   &a.cfg,
		Log:   a.log,
		RunID: a.runID,
		In:    a.stdin,
		Out:   a.stdout,
	}
}

func (a *app) sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort <dir>",
		Short: "Move files into <dir>/YYYY/YYYY-MM-DD/ by the date in their name or mtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := config.NormalizeDirArg(args[0])
			if a.cfg.DryRun {
				a.log.Warn("DRY RUN, nothing will be moved")
			}
			ctx, cancel := a.signalContext()
			defer cancel()

			_, err := a.runner().Sort(ctx, dir, nil)
			return err
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report git, editor and config file availability",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			display.PrintBanner(a.stdout)
			check.RunCheck(&a.cfg, a.configPath, a.log)
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.cfg.Save(a.configPath); err != nil {
				return err
			}
			a.log.Success("Wrote %s", a.configPath)
			return nil
		},
	})
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "batchren v%s (%s)\n", version, commit)
		},
	}
}
