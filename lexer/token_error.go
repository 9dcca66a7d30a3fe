package lexer

import (
	"fmt"

	"github.com/hadrian-reppas/zparse/source"
)

// TokenError is raised by a synthesized lexer (grammar.Tokenize) at run
// time, when it is scanning text against a grammar.LexerDescription
// and no entry matches at the current position. Errors returned by a
// grammar.Host hook are passed through unchanged, not wrapped in a
// TokenError. Unlike zparse.Error, a TokenError carries no
// numeric code and is not grouped into the grammar-error taxonomy: it
// is a fact about the text being scanned, not a diagnostic about a
// grammar description.
type TokenError struct {
	Message string
	Line    int
	Col     int
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// NewTokenError builds a TokenError pinned to pos.
func NewTokenError(pos source.Pos, format string, args ...any) *TokenError {
	return &TokenError{
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line(),
		Col:     pos.Col(),
	}
}
