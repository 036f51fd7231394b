package instruction

// Parse turns a token sequence into a program. The grammar is a flat,
// comma-separated list; each opcode consumes a fixed number of argument
// tokens of fixed kinds. An empty token sequence is an empty program.
func Parse(tokens []Token) ([]Instruction, error) {
	p := &parser{tokens: tokens}
	return p.program()
}

// ParseProgram tokenizes and parses src.
func ParseProgram(src string) ([]Instruction, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) next() (Token, bool) {
	if p.atEnd() {
		return Token{}, false
	}
	t := p.tokens[p.pos]
	p.pos++
	return t, true
}

// got describes the next token for error messages without consuming it.
func (p *parser) got() (string, int) {
	if p.atEnd() {
		return "end of program", -1
	}
	t := p.tokens[p.pos]
	return t.describe(), t.Pos
}

func (p *parser) fail(instr, expected string) *SyntaxError {
	got, pos := p.got()
	return &SyntaxError{Instruction: instr, Expected: expected, Got: got, Pos: pos}
}

func (p *parser) program() ([]Instruction, error) {
	program := []Instruction{}
	if p.atEnd() {
		return program, nil
	}
	for {
		in, err := p.instruction()
		if err != nil {
			return nil, err
		}
		program = append(program, in)

		if p.atEnd() {
			return program, nil
		}
		if p.tokens[p.pos].Kind != KindComma {
			return nil, p.fail(in.Name(), "',' or end of program")
		}
		p.pos++
		if p.atEnd() {
			return nil, p.fail("", "instruction after ','")
		}
	}
}

func (p *parser) instruction() (Instruction, error) {
	if p.atEnd() || p.tokens[p.pos].Kind != KindOpcode {
		return nil, p.fail("", "instruction")
	}
	t, _ := p.next()
	kw := t.Keyword

	switch kw.Op {
	case OpSanitize:
		return Sanitize{}, nil
	case OpLowerCase:
		return LowerCase{}, nil
	case OpUpperCase:
		return UpperCase{}, nil
	case OpTitleCase:
		return TitleCase{}, nil
	case OpSentenceCase:
		return SentenceCase{}, nil
	case OpJoinCamel:
		return JoinCamel{}, nil
	case OpJoinSnake:
		return JoinSnake{}, nil
	case OpJoinKebab:
		return JoinKebab{}, nil
	case OpSplitCamel:
		return SplitCamel{}, nil
	case OpSplitSnake:
		return SplitSnake{}, nil
	case OpSplitKebab:
		return SplitKebab{}, nil
	case OpExtensionRemove:
		return ExtensionRemove{}, nil
	case OpReorder:
		return Reorder{}, nil
	case OpReplaceSep:
		return Replace{Pattern: SepArg(kw.From), With: SepArg(kw.To)}, nil

	case OpReplace:
		name := Replace{}.Name()
		from, err := p.str(name, "search string")
		if err != nil {
			return nil, err
		}
		to, err := p.str(name, "replacement string")
		if err != nil {
			return nil, err
		}
		return Replace{Pattern: TextArg(from), With: TextArg(to)}, nil

	case OpPatternMatch:
		name := PatternMatch{}.Name()
		match, err := p.str(name, "match pattern string")
		if err != nil {
			return nil, err
		}
		replace, err := p.str(name, "replace pattern string")
		if err != nil {
			return nil, err
		}
		return PatternMatch{Match: match, Replace: replace}, nil

	case OpExtensionAdd:
		ext, err := p.str(ExtensionAdd{}.Name(), "extension string")
		if err != nil {
			return nil, err
		}
		return ExtensionAdd{Ext: ext}, nil

	case OpInsert:
		name := Insert{}.Name()
		text, err := p.str(name, "text string")
		if err != nil {
			return nil, err
		}
		at, err := p.position(name)
		if err != nil {
			return nil, err
		}
		return Insert{Text: text, At: at}, nil

	case OpDelete:
		name := Delete{}.Name()
		if p.atEnd() || p.tokens[p.pos].Kind != KindIndex {
			return nil, p.fail(name, "start index")
		}
		from, _ := p.next()
		to, err := p.position(name)
		if err != nil {
			return nil, err
		}
		return Delete{From: from.Index, To: to}, nil
	}
	return nil, &SyntaxError{Expected: "instruction", Got: t.describe(), Pos: t.Pos}
}

func (p *parser) str(instr, what string) (string, error) {
	if p.atEnd() || p.tokens[p.pos].Kind != KindString {
		return "", p.fail(instr, what)
	}
	t, _ := p.next()
	return t.Text, nil
}

func (p *parser) position(instr string) (Position, error) {
	if !p.atEnd() {
		switch t := p.tokens[p.pos]; t.Kind {
		case KindEnd:
			p.pos++
			return End, nil
		case KindIndex:
			p.pos++
			return At(t.Index), nil
		}
	}
	return Position{}, p.fail(instr, "index or 'end'")
}
