package instruction

import (
	"unicode"

	"github.com/backmassage/batchren/internal/scan"
)

// keywords is the complete opcode table. Lookup is case-insensitive and
// longest-match, so "sc" is split-camel and never "s" followed by "c". A
// letter run that no single keyword covers is a lexical error.
var keywords = func() map[string]Keyword {
	table := map[string]Keyword{
		"s":   {Op: OpSanitize},
		"cl":  {Op: OpLowerCase},
		"cu":  {Op: OpUpperCase},
		"ct":  {Op: OpTitleCase},
		"cs":  {Op: OpSentenceCase},
		"jc":  {Op: OpJoinCamel},
		"js":  {Op: OpJoinSnake},
		"jk":  {Op: OpJoinKebab},
		"sc":  {Op: OpSplitCamel},
		"ss":  {Op: OpSplitSnake},
		"sk":  {Op: OpSplitKebab},
		"r":   {Op: OpReplace},
		"p":   {Op: OpPatternMatch},
		"i":   {Op: OpInsert},
		"d":   {Op: OpDelete},
		"ea":  {Op: OpExtensionAdd},
		"er":  {Op: OpExtensionRemove},
		"o":   {Op: OpReorder},
		"end": {Op: -1},
	}
	seps := []Separator{SepDash, SepPeriod, SepSpace, SepUnderscore}
	for _, from := range seps {
		for _, to := range seps {
			if from != to {
				table["r"+from.letter()+to.letter()] = Keyword{Op: OpReplaceSep, From: from, To: to}
			}
		}
	}
	return table
}()

var keywordTrie = scan.NewTrie(keywords)

// Tokenize converts a program into tokens. Whitespace outside quotes only
// separates tokens. Quoted strings are copied verbatim; there are no
// escapes.
func Tokenize(src string) ([]Token, error) {
	s := scan.New(src)
	var tokens []Token
	for {
		s.TakeWhile(unicode.IsSpace)
		if s.EOF() {
			return tokens, nil
		}

		pos := s.Pos()
		r := s.Peek()
		switch {
		case r == ',':
			s.Next()
			tokens = append(tokens, Token{Kind: KindComma, Text: ",", Pos: pos})

		case r == '\'':
			s.Next()
			text, ok := s.TakeUntil('\'')
			if !ok {
				return nil, lexError(src, pos, "unterminated string")
			}
			tokens = append(tokens, Token{Kind: KindString, Text: text, Pos: pos})

		case scan.IsDigit(r):
			n, _, err := s.Uint()
			if err != nil {
				return nil, lexError(src, pos, "malformed integer: "+err.Error())
			}
			tokens = append(tokens, Token{Kind: KindIndex, Text: s.Slice(pos), Index: n, Pos: pos})

		case unicode.IsLetter(r):
			kw, text, ok := keywordTrie.Longest(s)
			// The match must cover the whole letter run: "ssd" is not "ss" then "d".
			if !ok || unicode.IsLetter(s.Peek()) {
				return nil, lexError(src, pos, "unknown instruction")
			}
			if kw.Op < 0 {
				tokens = append(tokens, Token{Kind: KindEnd, Text: text, Pos: pos})
				break
			}
			tokens = append(tokens, Token{Kind: KindOpcode, Keyword: kw, Text: text, Pos: pos})

		default:
			return nil, lexError(src, pos, "unexpected character")
		}
	}
}
