package engine

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/backmassage/batchren/internal/instruction"
	"github.com/backmassage/batchren/internal/naming"
	"github.com/backmassage/batchren/internal/pattern"
	"github.com/backmassage/batchren/internal/rules"
)

// Engine applies instruction programs to rename buffers.
type Engine struct {
	rand      pattern.Rand
	hasher    Hasher
	reorderer Reorderer
	log       Logger
	verbose   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the {rng} source.
func WithRand(r pattern.Rand) Option { return func(e *Engine) { e.rand = r } }

// WithSeed makes {rng} output reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithHasher sets the {sha} source.
func WithHasher(h Hasher) Option { return func(e *Engine) { e.hasher = h } }

// WithReorderer enables the reorder instruction.
func WithReorderer(r Reorderer) Option { return func(e *Engine) { e.reorderer = r } }

// WithLogger routes pattern mismatches and reference warnings to log.
func WithLogger(log Logger, verbose bool) Option {
	return func(e *Engine) {
		e.log = log
		e.verbose = verbose
	}
}

// New returns an engine with a randomly seeded generator, a SHA-256 file
// hasher, no reorderer and a silent logger.
func New(opts ...Option) *Engine {
	e := &Engine{
		rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		hasher: FileHasher{},
		log:    nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Program is a prepared instruction sequence. Patterns are compiled once
// here and reused for every file.
type Program struct {
	steps []step
}

// Len returns the number of prepared steps.
func (p *Program) Len() int { return len(p.steps) }

type step struct {
	in      instruction.Instruction
	match   *pattern.MatchPattern
	replace *pattern.ReplacePattern
}

// Prepare compiles prog. Any error here is reported before the buffer is
// touched.
func (e *Engine) Prepare(prog []instruction.Instruction) (*Program, error) {
	p := &Program{steps: make([]step, 0, len(prog))}
	for i, in := range prog {
		st := step{in: in}
		switch in := in.(type) {
		case instruction.PatternMatch:
			m, err := pattern.CompileMatch(in.Match)
			if err != nil {
				return nil, fmt.Errorf("instruction %d (%s): %w", i+1, in.Name(), err)
			}
			r, err := pattern.ParseReplace(in.Replace)
			if err != nil {
				return nil, fmt.Errorf("instruction %d (%s): %w", i+1, in.Name(), err)
			}
			if n := r.MaxFlorb(); n > len(m.Florbs) {
				e.log.Warn("instruction %d (%s): replace pattern references {%d} but %q has %d florb(s); missing references render nothing",
					i+1, in.Name(), n, in.Match, len(m.Florbs))
			}
			st.match, st.replace = m, r
		case instruction.Reorder:
			if e.reorderer == nil {
				return nil, fmt.Errorf("instruction %d (%s): %w", i+1, in.Name(), ErrNoReorderer)
			}
		}
		p.steps = append(p.steps, st)
	}
	return p, nil
}

// Apply runs every step of p over b in program order. Each step finishes
// for all entries before the next one starts.
func (e *Engine) Apply(p *Program, b *Buffer) error {
	for i, st := range p.steps {
		if err := e.applyStep(st, b); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", i+1, st.in.Name(), err)
		}
	}
	return nil
}

func (e *Engine) applyStep(st step, b *Buffer) error {
	switch in := st.in.(type) {
	case instruction.PatternMatch:
		return b.rewrite(func(i int, m naming.Move, stem, ext string) (string, string, error) {
			out, err := e.renderMatch(st, i, m, stem)
			return out, ext, err
		})

	case instruction.ExtensionAdd:
		ext := naming.NormalizeExt(in.Ext)
		return b.rewrite(func(_ int, _ naming.Move, stem, _ string) (string, string, error) {
			return stem, ext, nil
		})

	case instruction.ExtensionRemove:
		return b.rewrite(func(_ int, _ naming.Move, stem, _ string) (string, string, error) {
			return stem, "", nil
		})

	case instruction.Reorder:
		return e.reorder(b)
	}

	return b.rewrite(func(_ int, _ naming.Move, stem, ext string) (string, string, error) {
		out, ok := rules.Apply(st.in, stem)
		if !ok {
			return "", "", fmt.Errorf("no rule for %T", st.in)
		}
		return out, ext, nil
	})
}

func (e *Engine) renderMatch(st step, index int, m naming.Move, stem string) (string, error) {
	caps, ok := st.match.Match(stem)
	if !ok {
		e.log.Debug(e.verbose, "%q does not match %q, left unchanged", stem, st.match.Source)
		return stem, nil
	}
	return st.replace.Render(caps, pattern.Env{
		Index: index,
		Rand:  e.rand,
		Hash:  func() (string, error) { return e.hasher.Hash(m.Source) },
		Missing: func(ref int) {
			e.log.Debug(e.verbose, "%q: no capture for {%d}", stem, ref)
		},
	})
}

func (e *Engine) reorder(b *Buffer) error {
	names := make([]string, len(b.entries))
	for i, m := range b.entries {
		names[i] = filepath.Base(m.Dest)
	}
	out, err := e.reorderer.Reorder(names)
	if err != nil {
		return err
	}
	if len(out) != len(names) {
		return fmt.Errorf("reorder returned %d names for %d entries", len(out), len(names))
	}
	for i, name := range out {
		name = strings.TrimSpace(name)
		if err := checkName(name); err != nil {
			return fmt.Errorf("reorder line %d: %w", i+1, err)
		}
		dir, _ := filepath.Split(b.entries[i].Dest)
		b.entries[i].Dest = dir + name
	}
	return nil
}

// Plan is the outcome of running a program over a selection.
type Plan struct {
	Selected int           // entries in the buffer
	Moves    []naming.Move // entries that change, in buffer order
}

// Unchanged returns how many selected entries keep their name.
func (p Plan) Unchanged() int { return p.Selected - len(p.Moves) }

// Plan prepares prog, applies it to the identity buffer over paths and
// returns the diff.
func (e *Engine) Plan(prog []instruction.Instruction, paths []string) (Plan, error) {
	p, err := e.Prepare(prog)
	if err != nil {
		return Plan{}, err
	}
	b := NewBuffer(paths)
	if err := e.Apply(p, b); err != nil {
		return Plan{}, err
	}
	return Plan{Selected: b.Len(), Moves: b.Diff()}, nil
}
