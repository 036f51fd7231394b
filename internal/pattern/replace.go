package pattern

import (
	"fmt"
	"strings"

	"github.com/backmassage/batchren/internal/date"
	"github.com/backmassage/batchren/internal/scan"
)

// Component is one piece of a replace pattern. The set is closed.
type Component interface {
	isComponent()
}

type (
	// Literal is text copied to the output unchanged.
	Literal struct {
		Text string
	}

	// FlorbRef substitutes the capture of the Index-th florb (1-based).
	FlorbRef struct {
		Index int
	}

	// SequentialNumber renders Start + i*Step for the i-th file.
	SequentialNumber struct {
		Start   int
		Step    int
		Padding int
	}

	// RandomNumber renders a uniform draw from [Start, End).
	RandomNumber struct {
		Start   int
		End     int
		Padding int
	}

	// Sha renders a content hash of the file.
	Sha struct{}
)

func (Literal) isComponent()          {}
func (FlorbRef) isComponent()         {}
func (SequentialNumber) isComponent() {}
func (RandomNumber) isComponent()     {}
func (Sha) isComponent()              {}

// Generator defaults.
const (
	DefaultSeqStart  = 1
	DefaultSeqStep   = 1
	DefaultRandStart = 1
	DefaultRandEnd   = 100
)

// ReplacePattern is a parsed replace pattern.
type ReplacePattern struct {
	Source     string
	Components []Component
}

// MaxFlorb returns the highest florb index referenced, or 0.
func (p *ReplacePattern) MaxFlorb() int {
	highest := 0
	for _, c := range p.Components {
		if ref, ok := c.(FlorbRef); ok && ref.Index > highest {
			highest = ref.Index
		}
	}
	return highest
}

// UsesSha reports whether any component needs a content hash.
func (p *ReplacePattern) UsesSha() bool {
	for _, c := range p.Components {
		if _, ok := c.(Sha); ok {
			return true
		}
	}
	return false
}

// ParseReplace parses a replace pattern. A brace group that starts with
// digits and closes is a back-reference; one that starts with sng, rng or
// sha must be a well-formed generator. Everything else is literal text.
func ParseReplace(src string) (*ReplacePattern, error) {
	p := &replaceParser{src: src, s: scan.New(src)}
	return p.parse()
}

type replaceParser struct {
	src        string
	s          *scan.Scanner
	literal    strings.Builder
	components []Component
}

func (p *replaceParser) fail(pos int, format string, args ...any) error {
	return &Error{Kind: "replace", Pattern: p.src, Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *replaceParser) flush() {
	if p.literal.Len() > 0 {
		p.components = append(p.components, Literal{Text: p.literal.String()})
		p.literal.Reset()
	}
}

func (p *replaceParser) parse() (*ReplacePattern, error) {
	for !p.s.EOF() {
		if p.s.Peek() == '{' {
			mark := p.s.Mark()
			c, err := p.brace()
			if err != nil {
				return nil, err
			}
			if c != nil {
				p.flush()
				p.components = append(p.components, c)
				continue
			}
			p.s.Reset(mark)
		}
		p.literal.WriteRune(p.s.Next())
	}
	p.flush()
	return &ReplacePattern{Source: p.src, Components: p.components}, nil
}

// brace parses the group at '{'. A nil component with a nil error means
// the group is literal text.
func (p *replaceParser) brace() (Component, error) {
	start := p.s.Pos()
	p.s.Next()

	switch {
	case scan.IsDigit(p.s.Peek()):
		n, _, err := p.s.Uint()
		if err != nil {
			return nil, p.fail(start, "%v", err)
		}
		if !p.s.Accept('}') {
			return nil, nil
		}
		if n == 0 {
			return nil, p.fail(start, "florb references start at 1")
		}
		return FlorbRef{Index: n}, nil

	case p.s.AcceptString("sng"):
		return p.sequential(start)

	case p.s.AcceptString("rng"):
		return p.random(start)

	case p.s.AcceptString("sha"):
		if err := p.close(start, "sha"); err != nil {
			return nil, err
		}
		return Sha{}, nil
	}
	return nil, nil
}

func (p *replaceParser) sequential(start int) (Component, error) {
	c := SequentialNumber{Start: DefaultSeqStart, Step: DefaultSeqStep}
	if n, ok, err := p.s.Uint(); err != nil {
		return nil, p.fail(p.s.Pos(), "%v", err)
	} else if ok {
		c.Start = n
	}
	if p.s.Accept('+') {
		n, _, err := p.number("step after '+'")
		if err != nil {
			return nil, err
		}
		c.Step = n
	}
	pad, err := p.padding()
	if err != nil {
		return nil, err
	}
	c.Padding = pad
	return c, p.close(start, "sng")
}

func (p *replaceParser) random(start int) (Component, error) {
	c := RandomNumber{Start: DefaultRandStart, End: DefaultRandEnd}
	if p.s.Peek() == '-' {
		return nil, p.fail(p.s.Pos(), "rng range is missing its start before '-'")
	}
	if n, ok, err := p.s.Uint(); err != nil {
		return nil, p.fail(p.s.Pos(), "%v", err)
	} else if ok {
		c.End = n
		if p.s.Accept('-') {
			end, _, err := p.number("range end after '-'")
			if err != nil {
				return nil, err
			}
			c.Start, c.End = n, end
		}
		if c.End <= c.Start {
			return nil, p.fail(p.s.Pos(), "rng range %d-%d is empty", c.Start, c.End)
		}
	}
	pad, err := p.padding()
	if err != nil {
		return nil, err
	}
	c.Padding = pad
	return c, p.close(start, "rng")
}

// number reads a required integer.
func (p *replaceParser) number(what string) (int, bool, error) {
	pos := p.s.Pos()
	n, ok, err := p.s.Uint()
	if err != nil {
		return 0, false, p.fail(pos, "%v", err)
	}
	if !ok {
		return 0, false, p.fail(pos, "expected %s", what)
	}
	return n, true, nil
}

func (p *replaceParser) padding() (int, error) {
	if !p.s.Accept(',') {
		return 0, nil
	}
	n, _, err := p.number("padding after ','")
	return n, err
}

func (p *replaceParser) close(start int, name string) error {
	if !p.s.Accept('}') {
		return p.fail(p.s.Pos(), "unterminated {%s} generator opened at offset %d", name, start)
	}
	return nil
}

// Rand is the random source used by {rng}. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Env carries the per-file inputs of Render.
type Env struct {
	Index   int                    // position of the file in iteration order
	Rand    Rand                   // required when the pattern has {rng}
	Hash    func() (string, error) // required when the pattern has {sha}
	Missing func(index int)        // notified for back-references with no capture
}

// Render builds the output string for one file. Date captures are
// normalized to YYYY-MM-DD. A back-reference past the last capture renders
// nothing.
func (p *ReplacePattern) Render(caps []Capture, env Env) (string, error) {
	var b strings.Builder
	for _, c := range p.Components {
		switch c := c.(type) {
		case Literal:
			b.WriteString(c.Text)

		case FlorbRef:
			if c.Index > len(caps) {
				if env.Missing != nil {
					env.Missing(c.Index)
				}
				continue
			}
			b.WriteString(captureText(caps[c.Index-1]))

		case SequentialNumber:
			b.WriteString(pad(c.Start+env.Index*c.Step, c.Padding))

		case RandomNumber:
			b.WriteString(pad(c.Start+env.Rand.IntN(c.End-c.Start), c.Padding))

		case Sha:
			sum, err := env.Hash()
			if err != nil {
				return "", err
			}
			b.WriteString(sum)
		}
	}
	return b.String(), nil
}

func captureText(c Capture) string {
	if c.Kind != FlorbDate {
		return c.Text
	}
	d, err := date.Normalize(c.Text)
	if err != nil {
		// The {D} group only matches spellings Normalize understands.
		panic(fmt.Sprintf("pattern: date capture %q failed to normalize: %v", c.Text, err))
	}
	return d.String()
}

func pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
