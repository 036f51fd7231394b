// Package scan provides the rune cursor and keyword trie shared by the
// instruction lexer and the replace-pattern lexer.
package scan

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// EOF is returned by Peek and Next when the input is exhausted.
const EOF rune = -1

// Scanner is a forward-only cursor over a UTF-8 string. Offsets reported by
// Pos and Mark are byte offsets into the source.
type Scanner struct {
	src string
	pos int
}

// New returns a Scanner positioned at the start of src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() int { return s.pos }

// EOF reports whether the whole input has been consumed.
func (s *Scanner) EOF() bool { return s.pos >= len(s.src) }

// Peek returns the next rune without consuming it.
func (s *Scanner) Peek() rune {
	if s.EOF() {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

// Next consumes and returns the next rune.
func (s *Scanner) Next() rune {
	if s.EOF() {
		return EOF
	}
	r, w := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += w
	return r
}

// Mark returns a position that Reset can rewind to.
func (s *Scanner) Mark() int { return s.pos }

// Reset rewinds the cursor to a position previously returned by Mark.
func (s *Scanner) Reset(mark int) { s.pos = mark }

// Slice returns the source text between from and the current position.
func (s *Scanner) Slice(from int) string { return s.src[from:s.pos] }

// Rest returns the unconsumed input.
func (s *Scanner) Rest() string { return s.src[s.pos:] }

// Accept consumes r if it is the next rune.
func (s *Scanner) Accept(r rune) bool {
	if s.Peek() != r || r == EOF {
		return false
	}
	s.Next()
	return true
}

// AcceptString consumes lit if the input continues with it.
func (s *Scanner) AcceptString(lit string) bool {
	if len(s.src)-s.pos < len(lit) || s.src[s.pos:s.pos+len(lit)] != lit {
		return false
	}
	s.pos += len(lit)
	return true
}

// TakeWhile consumes the longest run of runes satisfying f and returns it.
func (s *Scanner) TakeWhile(f func(rune) bool) string {
	start := s.pos
	for !s.EOF() && f(s.Peek()) {
		s.Next()
	}
	return s.src[start:s.pos]
}

// TakeUntil consumes runes up to and including delim and returns the text
// before it. When delim never appears the cursor is left untouched and ok is
// false.
func (s *Scanner) TakeUntil(delim rune) (text string, ok bool) {
	start := s.pos
	for !s.EOF() {
		if s.Next() == delim {
			return s.src[start : s.pos-utf8.RuneLen(delim)], true
		}
	}
	s.pos = start
	return "", false
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool { return r >= '0' && r <= '9' }

// Uint consumes an ASCII digit run. ok is false (and nothing is consumed)
// when no digit follows; err is non-nil when the run does not fit an int.
func (s *Scanner) Uint() (n int, ok bool, err error) {
	start := s.pos
	digits := s.TakeWhile(IsDigit)
	if digits == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(digits)
	if err != nil {
		s.pos = start
		return 0, true, fmt.Errorf("integer %q out of range", digits)
	}
	return n, true, nil
}
