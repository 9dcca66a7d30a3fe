package lexer

import (
	"unicode/utf8"

	"github.com/hadrian-reppas/zparse"
	"github.com/hadrian-reppas/zparse/source"
)

// Error codes for the lexer package, within zparse.LexErrors..+99.
const (
	UnknownCharCode    = zparse.LexErrors + iota
	UnclosedStringCode
	UnclosedCodeCode
)

func (t *Tokenizer) posAt(offset int) source.Pos {
	return source.NewPos(t.src, offset)
}

func (t *Tokenizer) unknownCharError() *zparse.Error {
	r, _ := utf8.DecodeRune(t.code[t.pos:])
	return zparse.FormatErrorPos(t.posAt(t.pos), UnknownCharCode, "grammar error: unknown character %q", r)
}

func (t *Tokenizer) unclosedStringError(start int) *zparse.Error {
	return zparse.FormatErrorPos(t.posAt(start), UnclosedStringCode, "grammar error: unclosed string literal")
}

func (t *Tokenizer) unclosedCodeError(start int) *zparse.Error {
	return zparse.FormatErrorPos(t.posAt(start), UnclosedCodeCode, "grammar error: unclosed code block")
}
