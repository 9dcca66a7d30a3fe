// Package lexer performs layout-sensitive lexical analysis of grammar
// description text.
package lexer

import (
	"github.com/hadrian-reppas/zparse/source"
)

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds recognized in grammar text.
const (
	EOF Kind = iota
	ID
	CODE
	STRING
	NEWRULE
	COLON
	LPAREN
	RPAREN
	OR
	STAR
	PLUS
	QMARK
	DOT
	AT
	BAM
	EQUALS
	DASH
)

var kindNames = map[Kind]string{
	EOF:     "EOF",
	ID:      "identifier",
	CODE:    "code block",
	STRING:  "string literal",
	NEWRULE: "start of definition",
	COLON:   "':'",
	LPAREN:  "'('",
	RPAREN:  "')'",
	OR:      "'|'",
	STAR:    "'*'",
	PLUS:    "'+'",
	QMARK:   "'?'",
	DOT:     "'.'",
	AT:      "'@'",
	BAM:     "'!'",
	EQUALS:  "'='",
	DASH:    "'-'",
}

// String returns a human-readable name for k, used in diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown token"
}

// Token is an immutable lexeme: its kind, raw source text, and the
// position of its first byte. NEWRULE, EOF tokens carry no meaningful
// text but still carry a position.
type Token struct {
	Kind Kind
	Text string
	pos  source.Pos
}

// NewToken creates a Token. sp should be the position of the first
// byte of text.
func NewToken(kind Kind, text string, sp source.Pos) *Token {
	return &Token{kind, text, sp}
}

// Pos returns the captured source position.
func (t *Token) Pos() source.Pos {
	return t.pos
}

// SourceName returns the source name, implementing zparse.SourcePos.
func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

// Line returns the 1-based line number, implementing zparse.SourcePos.
func (t *Token) Line() int {
	return t.pos.Line()
}

// Col returns the 1-based column number, implementing zparse.SourcePos.
func (t *Token) Col() int {
	return t.pos.Col()
}

// Is reports whether the token has the given kind.
func (t *Token) Is(k Kind) bool {
	return t.Kind == k
}
