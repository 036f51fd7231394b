package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/backmassage/batchren/internal/check"
	"github.com/backmassage/batchren/internal/config"
	"github.com/backmassage/batchren/internal/date"
	"github.com/backmassage/batchren/internal/display"
	"github.com/backmassage/batchren/internal/engine"
	"github.com/backmassage/batchren/internal/instruction"
	"github.com/backmassage/batchren/internal/mover"
	"github.com/backmassage/batchren/internal/naming"
	"github.com/backmassage/batchren/internal/term"
	"github.com/backmassage/batchren/internal/tsort"
)

// Logger is the logging API the pipeline needs; *logging.Logger satisfies it.
type Logger interface {
	check.Logger
}

// Runner carries the collaborators of one run. Zero-valued optional fields
// fall back to the process defaults (stdin, stdout, time.Now, cwd, an
// EditorReorderer and a tsort default resolver).
type Runner struct {
	Cfg       *config.Config
	Log       Logger
	RunID     string
	In        io.Reader
	Out       io.Writer
	Cwd       string
	Now       func() time.Time
	Reorderer engine.Reorderer
	SkipDeps  bool // tests: do not probe PATH for git or the editor
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Runner) in() io.Reader {
	if r.In == nil {
		return os.Stdin
	}
	return r.In
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Rename is the main entry point: compile cfg.Program, select cfg.Paths,
// plan, then present/confirm/execute via Apply.
func (r *Runner) Rename(ctx context.Context) (RunStats, error) {
	var stats RunStats
	cfg := r.Cfg

	prog, err := instruction.ParseProgram(cfg.Program)
	if err != nil {
		return stats, err
	}
	log := r.Log
	log.Debug(cfg.Verbose, "Program: %s", instruction.Format(prog))

	if !r.SkipDeps {
		if err := check.CheckDeps(cfg, check.Needs{Git: cfg.Git, Editor: hasReorder(prog)}); err != nil {
			return stats, err
		}
	}

	paths, err := Discover(cfg.Paths, Selection{Recursive: cfg.Recursive, Dirs: cfg.Dirs, Hidden: cfg.Hidden})
	if err != nil {
		return stats, fmt.Errorf("discover: %w", err)
	}
	if len(paths) == 0 {
		log.Warn("No paths selected")
		return stats, nil
	}
	log.Info("Selected %d path(s)", len(paths))

	plan, err := r.engine().Plan(prog, paths)
	if err != nil {
		return stats, err
	}
	stats.Total = plan.Selected
	stats.Unchanged = plan.Unchanged()

	err = r.Apply(ctx, plan.Moves, &stats)
	return stats, err
}

func (r *Runner) engine() *engine.Engine {
	reorderer := r.Reorderer
	if reorderer == nil {
		reorderer = EditorReorderer{Editor: r.Cfg.Editor, Stdin: r.in(), Stdout: r.out()}
	}
	opts := []engine.Option{
		engine.WithLogger(r.Log, r.Cfg.Verbose),
		engine.WithReorderer(reorderer),
	}
	if r.Cfg.Seed >= 0 {
		opts = append(opts, engine.WithSeed(uint64(r.Cfg.Seed)))
	}
	return engine.New(opts...)
}

func hasReorder(prog []instruction.Instruction) bool {
	for _, in := range prog {
		if _, ok := in.(instruction.Reorder); ok {
			return true
		}
	}
	return false
}

// Sort plans moving every file directly inside dir into its date folder,
// then presents/confirms/executes via Apply.
func (r *Runner) Sort(ctx context.Context, dir string, resolver date.Resolver) (RunStats, error) {
	var stats RunStats
	cfg := r.Cfg

	files, err := Discover([]string{dir}, Selection{Hidden: cfg.Hidden})
	if err != nil {
		return stats, fmt.Errorf("discover: %w", err)
	}
	if resolver == nil {
		resolver = tsort.DefaultResolver()
	}
	res := tsort.Plan(dir, files, resolver)
	for _, e := range res.Entries {
		r.Log.Debug(cfg.Verbose, "%s: %s from %s", e.Source, e.Stamp.Date, e.Stamp.Source)
	}
	for _, f := range res.Unresolved {
		r.Log.Warn("No date for %s, left in place", f)
	}

	stats.Total = len(files)
	stats.Unchanged = res.InPlace + len(res.Unresolved)
	stats.Unresolved = len(res.Unresolved)
	err = r.Apply(ctx, res.Moves(), &stats)
	return stats, err
}

// Apply is shared by every planner: conflict check, presentation, dry-run
// stop, confirmation, execution and the undo script.
func (r *Runner) Apply(ctx context.Context, moves []naming.Move, stats *RunStats) error {
	cfg, log := r.Cfg, r.Log
	out := r.out()

	if len(moves) == 0 {
		log.Info("Nothing to rename")
		logSummary(log, stats, cfg.DryRun)
		return nil
	}
	stats.Planned = len(moves)

	opts := display.PlanOptions{Cwd: r.cwd(), Color: term.Enabled()}
	if conflicts := naming.DetectConflicts(moves, exists); len(conflicts) > 0 {
		fmt.Fprint(out, display.RenderConflicts(conflicts, opts))
		return &naming.ConflictError{Conflicts: conflicts}
	}

	fmt.Fprint(out, display.RenderPlan(moves, opts))

	if cfg.DryRun {
		log.Success("[DRY] Would rename %d path(s)", len(moves))
		logSummary(log, stats, true)
		return nil
	}

	if !cfg.AssumeYes {
		ok, err := Confirm(r.in(), out, fmt.Sprintf("Rename %d path(s)? [y/N] ", len(moves)))
		if err != nil {
			return err
		}
		if !ok {
			log.Warn("Aborted, nothing renamed")
			return nil
		}
	}

	res, execErr := mover.Execute(ctx, moves, mover.Options{Git: cfg.Git, Verbose: cfg.Verbose, Log: log})
	stats.Renamed = res.Renamed
	if res.Fallbacks > 0 {
		log.Warn("%d untracked path(s) renamed without git", res.Fallbacks)
	}
	var rerr *mover.RenameError
	if errors.As(execErr, &rerr) {
		stats.Failed = 1
	}

	if cfg.UndoFile != "" && res.Renamed > 0 {
		h := UndoHeader{RunID: r.RunID, At: r.now(), Git: cfg.Git}
		if err := WriteUndoFile(cfg.UndoFile, moves[:res.Renamed], h); err != nil {
			log.Error("Cannot write undo script: %v", err)
		} else {
			log.Info("Undo script: %s", cfg.UndoFile)
		}
	}

	if execErr == nil {
		log.Success("Renamed %d path(s)", res.Renamed)
	}
	logSummary(log, stats, false)
	return execErr
}

func (r *Runner) cwd() string {
	if r.Cwd != "" {
		return r.Cwd
	}
	wd, _ := os.Getwd()
	return wd
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
