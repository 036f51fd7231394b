package instruction

import "fmt"

// LexicalError reports input the tokenizer could not turn into tokens.
type LexicalError struct {
	Pos      int    // byte offset of the offending input
	Fragment string // input starting at Pos, truncated
	Reason   string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at offset %d near %q: %s", e.Pos, e.Fragment, e.Reason)
}

const fragmentRunes = 12

func lexError(src string, pos int, reason string) *LexicalError {
	frag := []rune(src[pos:])
	if len(frag) > fragmentRunes {
		frag = append(frag[:fragmentRunes], '…')
	}
	return &LexicalError{Pos: pos, Fragment: string(frag), Reason: reason}
}

// SyntaxError reports a token sequence that does not form a program.
type SyntaxError struct {
	Instruction string // empty when the error is between instructions
	Expected    string
	Got         string
	Pos         int
}

func (e *SyntaxError) Error() string {
	if e.Instruction == "" {
		return fmt.Sprintf("syntax error: expected %s, got %s", e.Expected, e.Got)
	}
	return fmt.Sprintf("syntax error in %s: expected %s, got %s", e.Instruction, e.Expected, e.Got)
}
