package instruction

import "fmt"

// Kind classifies a token.
type Kind int

const (
	KindOpcode Kind = iota
	KindString
	KindIndex
	KindEnd
	KindComma
)

func (k Kind) String() string {
	switch k {
	case KindOpcode:
		return "instruction"
	case KindString:
		return "string"
	case KindIndex:
		return "index"
	case KindEnd:
		return "end"
	case KindComma:
		return "','"
	}
	return "token"
}

// Opcode identifies an instruction keyword.
type Opcode int

const (
	OpSanitize Opcode = iota
	OpLowerCase
	OpUpperCase
	OpTitleCase
	OpSentenceCase
	OpJoinCamel
	OpJoinSnake
	OpJoinKebab
	OpSplitCamel
	OpSplitSnake
	OpSplitKebab
	OpReplace
	OpReplaceSep
	OpPatternMatch
	OpInsert
	OpDelete
	OpExtensionAdd
	OpExtensionRemove
	OpReorder
)

// Keyword is the value a recognized keyword lexes to. From and To are set
// only for OpReplaceSep.
type Keyword struct {
	Op   Opcode
	From Separator
	To   Separator
}

// Token is one lexical unit of a program.
type Token struct {
	Kind    Kind
	Keyword Keyword // KindOpcode
	Text    string  // source text; the unquoted content for strings
	Index   int     // KindIndex
	Pos     int     // byte offset in the program
}

func (t Token) describe() string {
	switch t.Kind {
	case KindString:
		return fmt.Sprintf("string '%s' at offset %d", t.Text, t.Pos)
	case KindIndex:
		return fmt.Sprintf("index %d at offset %d", t.Index, t.Pos)
	case KindOpcode:
		return fmt.Sprintf("instruction %q at offset %d", t.Text, t.Pos)
	}
	return fmt.Sprintf("%s at offset %d", t.Kind, t.Pos)
}
