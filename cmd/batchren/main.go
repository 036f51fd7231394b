// Command batchren renames files in bulk with a small rule language:
//
//	batchren [flags] <program> <paths...>
//	batchren sort [flags] <dir>
//
// The program is a comma-separated list of instructions such as
// "ct, js, p '{X} {N}' '{2} {1}'". Every run shows the plan and asks for
// confirmation before anything is renamed.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/backmassage/batchren/internal/config"
	"github.com/backmassage/batchren/internal/logging"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app holds the state shared by the commands of one invocation.
type app struct {
	flags      config.Config // flag targets; merged over the loaded config
	negated    config.Negated
	configPath string

	cfg   config.Config // effective settings
	log   *logging.Logger
	runID string

	stdin          io.Reader
	stdout, stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		flags:  config.DefaultConfig(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.log != nil {
		if err != nil {
			a.log.Error("%v", err)
		}
		_ = a.log.Close()
	} else if err != nil {
		fmt.Fprintf(stderr, "batchren: %v\n", err)
	}
	if err != nil {
		return 1
	}
	return 0
}

// setup runs before every command that needs a logger: load the config
// file, replay explicit flags over it, validate, and open the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.ApplyChanged(&cfg, cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.configPath = path

	a.runID = uuid.NewString()
	log, err := logging.NewLogger(&a.cfg, a.runID, a.stdout, a.stderr)
	if err != nil {
		return err
	}
	a.log = log
	log.Debug(cfg.Verbose, "Run %s, config %s", a.runID, path)
	return nil
}

// signalContext cancels the returned context on SIGINT/SIGTERM so the
// mover can stop between renames.
func (a *app) signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			a.log.Warn("Received interrupt, stopping after the current rename…")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
