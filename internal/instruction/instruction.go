// Package instruction tokenizes and parses rename programs: comma-separated
// instruction lists such as
//
//	cl, rsu, p '{X} - {N}' '{2} {1}', ea 'txt'
//
// into an ordered, immutable []Instruction.
package instruction

import (
	"fmt"
	"strings"
)

// Instruction is one step of a rename program. The set of implementations
// is closed; every concrete type lives in this file.
type Instruction interface {
	// Name is the human-readable instruction name used in messages.
	Name() string
	// String renders the instruction in program syntax.
	String() string
	isInstruction()
}

// Separator is one of the four separator characters the fixed replace
// opcodes (rds, rsu, ...) operate on.
type Separator rune

const (
	SepDash       Separator = '-'
	SepPeriod     Separator = '.'
	SepSpace      Separator = ' '
	SepUnderscore Separator = '_'
)

// letter returns the opcode letter naming s.
func (s Separator) letter() string {
	switch s {
	case SepDash:
		return "d"
	case SepPeriod:
		return "p"
	case SepSpace:
		return "s"
	case SepUnderscore:
		return "u"
	}
	return "?"
}

// ReplaceArg is an operand of Replace: a separator token or literal text.
type ReplaceArg struct {
	Sep  Separator // zero when the argument is literal text
	Text string
}

// SepArg returns a separator operand.
func SepArg(s Separator) ReplaceArg { return ReplaceArg{Sep: s} }

// TextArg returns a literal text operand.
func TextArg(s string) ReplaceArg { return ReplaceArg{Text: s} }

// Value resolves the operand to the substring it stands for.
func (a ReplaceArg) Value() string {
	if a.Sep != 0 {
		return string(rune(a.Sep))
	}
	return a.Text
}

// Position is a character offset used by Insert and Delete: either the end
// of the string or a 0-based rune index.
type Position struct {
	Index int
	AtEnd bool
}

// End is the end-of-string position.
var End = Position{AtEnd: true}

// At returns the position of rune index i.
func At(i int) Position { return Position{Index: i} }

// Resolve clamps p to a string of length runes.
func (p Position) Resolve(length int) int {
	if p.AtEnd || p.Index > length {
		return length
	}
	if p.Index < 0 {
		return 0
	}
	return p.Index
}

func (p Position) String() string {
	if p.AtEnd {
		return "end"
	}
	return fmt.Sprint(p.Index)
}

func quote(s string) string { return "'" + s + "'" }

type (
	LowerCase    struct{}
	UpperCase    struct{}
	TitleCase    struct{}
	SentenceCase struct{}
	JoinCamel    struct{}
	JoinSnake    struct{}
	JoinKebab    struct{}
	SplitCamel   struct{}
	SplitSnake   struct{}
	SplitKebab   struct{}
	Sanitize     struct{}

	// Replace substitutes every occurrence of Pattern with With.
	Replace struct {
		Pattern ReplaceArg
		With    ReplaceArg
	}

	// PatternMatch rewrites stems that match a florb pattern. Both patterns
	// are kept as source text; the engine compiles them once per run.
	PatternMatch struct {
		Match   string
		Replace string
	}

	// ExtensionAdd sets the extension, replacing any existing one.
	ExtensionAdd struct {
		Ext string
	}

	ExtensionRemove struct{}

	// Insert places Text at At.
	Insert struct {
		Text string
		At   Position
	}

	// Delete removes the runes in [From, To).
	Delete struct {
		From int
		To   Position
	}

	// Reorder hands the current names to an interactive collaborator.
	Reorder struct{}
)

func (LowerCase) Name() string       { return "lower case" }
func (UpperCase) Name() string       { return "upper case" }
func (TitleCase) Name() string       { return "title case" }
func (SentenceCase) Name() string    { return "sentence case" }
func (JoinCamel) Name() string       { return "join camel" }
func (JoinSnake) Name() string       { return "join snake" }
func (JoinKebab) Name() string       { return "join kebab" }
func (SplitCamel) Name() string      { return "split camel" }
func (SplitSnake) Name() string      { return "split snake" }
func (SplitKebab) Name() string      { return "split kebab" }
func (Sanitize) Name() string        { return "sanitize" }
func (Replace) Name() string         { return "replace" }
func (PatternMatch) Name() string    { return "pattern match" }
func (ExtensionAdd) Name() string    { return "extension add" }
func (ExtensionRemove) Name() string { return "extension remove" }
func (Insert) Name() string          { return "insert" }
func (Delete) Name() string          { return "delete" }
func (Reorder) Name() string         { return "reorder" }

func (LowerCase) String() string       { return "cl" }
func (UpperCase) String() string       { return "cu" }
func (TitleCase) String() string       { return "ct" }
func (SentenceCase) String() string    { return "cs" }
func (JoinCamel) String() string       { return "jc" }
func (JoinSnake) String() string       { return "js" }
func (JoinKebab) String() string       { return "jk" }
func (SplitCamel) String() string      { return "sc" }
func (SplitSnake) String() string      { return "ss" }
func (SplitKebab) String() string      { return "sk" }
func (Sanitize) String() string        { return "s" }
func (ExtensionRemove) String() string { return "er" }
func (Reorder) String() string         { return "o" }

func (r Replace) String() string {
	if r.Pattern.Sep != 0 && r.With.Sep != 0 {
		return "r" + r.Pattern.Sep.letter() + r.With.Sep.letter()
	}
	return strings.Join([]string{"r", quote(r.Pattern.Value()), quote(r.With.Value())}, " ")
}

func (p PatternMatch) String() string {
	return "p " + quote(p.Match) + " " + quote(p.Replace)
}

func (e ExtensionAdd) String() string { return "ea " + quote(e.Ext) }

func (i Insert) String() string { return "i " + quote(i.Text) + " " + i.At.String() }

func (d Delete) String() string { return fmt.Sprintf("d %d %s", d.From, d.To) }

func (LowerCase) isInstruction()       {}
func (UpperCase) isInstruction()       {}
func (TitleCase) isInstruction()       {}
func (SentenceCase) isInstruction()    {}
func (JoinCamel) isInstruction()       {}
func (JoinSnake) isInstruction()       {}
func (JoinKebab) isInstruction()       {}
func (SplitCamel) isInstruction()      {}
func (SplitSnake) isInstruction()      {}
func (SplitKebab) isInstruction()      {}
func (Sanitize) isInstruction()        {}
func (Replace) isInstruction()         {}
func (PatternMatch) isInstruction()    {}
func (ExtensionAdd) isInstruction()    {}
func (ExtensionRemove) isInstruction() {}
func (Insert) isInstruction()          {}
func (Delete) isInstruction()          {}
func (Reorder) isInstruction()         {}

// Format renders a program back to source text.
func Format(program []Instruction) string {
	parts := make([]string, len(program))
	for i, in := range program {
		parts[i] = in.String()
	}
	return strings.Join(parts, ", ")
}
