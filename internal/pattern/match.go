package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/backmassage/batchren/internal/date"
	"github.com/backmassage/batchren/internal/scan"
)

// FlorbKind is the placeholder letter of a match-pattern florb.
type FlorbKind rune

const (
	FlorbAlpha FlorbKind = 'A'
	FlorbDigit FlorbKind = 'N'
	FlorbAny   FlorbKind = 'X'
	FlorbDate  FlorbKind = 'D'
)

// groupExpr is the capture body each florb kind compiles to.
var groupExpr = map[FlorbKind]string{
	FlorbAlpha: `[[:alpha:]]*`,
	FlorbDigit: `[[:digit:]]*`,
	FlorbAny:   `.*`,
	FlorbDate:  date.Pattern(),
}

// MatchPattern is a compiled match pattern.
type MatchPattern struct {
	Source string
	Expr   string      // anchored regex source
	Florbs []FlorbKind // florb kinds in capture-group order
	re     *regexp.Regexp
}

// Capture is the text one florb matched.
type Capture struct {
	Kind FlorbKind
	Text string
}

// GroupName returns the capture-group name of the i-th florb (1-based).
func GroupName(i int) string { return fmt.Sprintf("f%d", i) }

// CompileMatch compiles a match pattern. Text outside florbs is matched
// literally; every regex metacharacter in it is quoted.
func CompileMatch(src string) (*MatchPattern, error) {
	var (
		expr    strings.Builder
		literal strings.Builder
		florbs  []FlorbKind
	)
	flush := func() {
		expr.WriteString(regexp.QuoteMeta(literal.String()))
		literal.Reset()
	}

	expr.WriteString("^")
	s := scan.New(src)
	for !s.EOF() {
		if kind, ok := acceptFlorb(s); ok {
			flush()
			florbs = append(florbs, kind)
			fmt.Fprintf(&expr, "(?P<%s>%s)", GroupName(len(florbs)), groupExpr[kind])
			continue
		}
		literal.WriteRune(s.Next())
	}
	flush()
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, &Error{Kind: "match", Pattern: src, Pos: 0, Reason: err.Error()}
	}
	return &MatchPattern{Source: src, Expr: expr.String(), Florbs: florbs, re: re}, nil
}

func acceptFlorb(s *scan.Scanner) (FlorbKind, bool) {
	mark := s.Mark()
	if !s.Accept('{') {
		return 0, false
	}
	kind := FlorbKind(s.Next())
	if _, known := groupExpr[kind]; known && s.Accept('}') {
		return kind, true
	}
	s.Reset(mark)
	return 0, false
}

// Regexp returns the compiled expression.
func (m *MatchPattern) Regexp() *regexp.Regexp { return m.re }

// Match matches stem against the pattern and returns one capture per florb
// in declaration order.
func (m *MatchPattern) Match(stem string) ([]Capture, bool) {
	sub := m.re.FindStringSubmatch(stem)
	if sub == nil {
		return nil, false
	}
	caps := make([]Capture, len(m.Florbs))
	for i, kind := range m.Florbs {
		caps[i] = Capture{Kind: kind, Text: sub[m.re.SubexpIndex(GroupName(i+1))]}
	}
	return caps, true
}
