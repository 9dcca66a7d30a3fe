package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/hadrian-reppas/zparse/source"
)

// Tokenizer performs a two-cursor (slow/fast) scan of grammar text,
// producing one Token per call to Next, terminated by an EOF token.
// Layout (not an explicit terminator) marks the end of a definition: a
// virtual NEWRULE token is inserted wherever a new definition begins,
// so the grammar parser never needs to look past a blank line to find
// where one definition ends and the next starts.
//
// A Tokenizer is a lazy, stateful producer; it is not safe for
// concurrent use.
type Tokenizer struct {
	src  *source.Source
	code []byte
	pos  int

	pendingLeadingNewRule bool
}

// New creates a Tokenizer over src.
func New(src *source.Source) *Tokenizer {
	t := &Tokenizer{src: src, code: src.Content()}
	if len(t.code) > 0 && isIdentStartByte(t.code[0]) {
		t.pendingLeadingNewRule = true
	}
	return t
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

var singleCharKinds = map[byte]Kind{
	':': COLON,
	'(': LPAREN,
	')': RPAREN,
	'|': OR,
	'*': STAR,
	'+': PLUS,
	'?': QMARK,
	'.': DOT,
	'@': AT,
	'!': BAM,
	'=': EQUALS,
	'-': DASH,
}

func (t *Tokenizer) token(kind Kind, start int) *Token {
	return NewToken(kind, string(t.code[start:t.pos]), source.NewPos(t.src, start))
}

// Next fetches and returns the next token, advancing the scan
// position. Returns a nil token and a *zparse.Error on a lexical
// error. The final token returned (for any subsequent call) is EOF.
func (t *Tokenizer) Next() (*Token, error) {
	if t.pendingLeadingNewRule {
		t.pendingLeadingNewRule = false
		return NewToken(NEWRULE, "", source.NewPos(t.src, 0)), nil
	}

	for {
		if t.pos >= len(t.code) {
			return NewToken(EOF, "", source.NewPos(t.src, t.pos)), nil
		}

		c := t.code[t.pos]
		switch {
		case isSpace(c):
			sawNewline := false
			for t.pos < len(t.code) && isSpace(t.code[t.pos]) {
				if t.code[t.pos] == '\n' {
					sawNewline = true
				}
				t.pos++
			}
			if sawNewline && t.pos < len(t.code) && isIdentStartByte(t.code[t.pos]) {
				return NewToken(NEWRULE, "", source.NewPos(t.src, t.pos)), nil
			}
			continue

		case c == '#':
			for t.pos < len(t.code) && t.code[t.pos] != '\n' {
				t.pos++
			}
			continue

		case c == '{':
			return t.scanCode()

		case c == '\'' || c == '"':
			return t.scanString(c)

		case isIdentStartByte(c):
			return t.scanIdent()

		default:
			if kind, ok := singleCharKinds[c]; ok {
				start := t.pos
				t.pos++
				return t.token(kind, start), nil
			}
			return nil, t.unknownCharError()
		}
	}
}

func (t *Tokenizer) scanIdent() (*Token, error) {
	start := t.pos
	for t.pos < len(t.code) {
		r, size := utf8.DecodeRune(t.code[t.pos:])
		if t.pos == start {
			if !isIdentStartRune(r) {
				break
			}
		} else if !isIdentContRune(r) {
			break
		}
		t.pos += size
	}
	if t.pos == start {
		return nil, t.unknownCharError()
	}
	return t.token(ID, start), nil
}

func (t *Tokenizer) scanString(quote byte) (*Token, error) {
	start := t.pos
	t.pos++
	for {
		if t.pos >= len(t.code) {
			return nil, t.unclosedStringError(start)
		}
		c := t.code[t.pos]
		if c == quote {
			t.pos++
			return t.token(STRING, start), nil
		}
		if c == '\\' {
			t.pos++
			if t.pos >= len(t.code) {
				return nil, t.unclosedStringError(start)
			}
		}
		t.pos++
	}
}

func (t *Tokenizer) scanCode() (*Token, error) {
	start := t.pos
	t.pos++
	depth := 1
	for depth > 0 {
		if t.pos >= len(t.code) {
			return nil, t.unclosedCodeError(start)
		}

		switch t.code[t.pos] {
		case '\'', '"':
			quote := t.code[t.pos]
			t.pos++
			for t.pos < len(t.code) && t.code[t.pos] != quote {
				if t.code[t.pos] == '\\' {
					t.pos++
				}
				t.pos++
			}
			if t.pos >= len(t.code) {
				return nil, t.unclosedCodeError(start)
			}
			t.pos++

		case '{':
			depth++
			t.pos++

		case '}':
			depth--
			t.pos++

		default:
			t.pos++
		}
	}
	return t.token(CODE, start), nil
}
