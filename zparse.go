/*
Package zparse is the front end of a parser generator.

It consumes a textual grammar description written in a small EBNF-like
meta-language (with semantic tags, inline host-code snippets, semantic
predicates, character ranges and fragments) and produces a validated
grammar.Grammar together with a synthesized longest-match lexer
description. Downstream stages (parser table construction, syntax tree
assembly) are not part of this module.

Consists of subpackages:
  - source: source file and position tracking;
  - lexer: layout-sensitive lexical analyzer for grammar text;
  - ast: typed grammar expression tree (rules/tokens/fragments bodies);
  - grammar: grammar aggregate and the synthesized lexer description;
  - langdef: converts grammar text to a grammar.Grammar and a
    grammar.LexerDescription;
  - cmd/zparse: console utility driving langdef.Parse over a file.

Typical usage is:

	g, e := langdef.ParseString("my-grammar", src)
	if e != nil {
		// e is a *zparse.Error
	}
	lex, e := langdef.Synthesize(g, false)
*/
package zparse

import (
	"fmt"
)

// Error classes, each reserving up to 99 codes. Grouping mirrors the
// components that can raise a diagnostic.
const (
	LexErrors     = 1   // raised by lexer while tokenizing grammar text
	SyntaxErrors  = 101 // raised by langdef (and ast) while parsing, validating, or synthesizing
	SynthErrors   = 201 // unused: langdef numbers its synthesis diagnostics within SyntaxErrors
	RuntimeErrors = 301 // unused: a synthesized lexer reports lexer.TokenError, which has no code
)

// Error is the error type used by every zparse subpackage for grammar
// errors (diagnostics raised while tokenizing, parsing, or validating
// a grammar description). It is always fatal to the current grammar
// load: there is no partial result and no retry.
type Error struct {
	// Code contains a non-zero error code from one of the *Errors blocks.
	Code int

	// Message contains a human-readable message, including source
	// name/position if known.
	Message string

	// SourceName contains the offending source name, or "".
	SourceName string

	// Line and Col contain 1-based position, or 0 if unknown.
	Line, Col int
}

// SourcePos is implemented by anything that can describe its own
// position for error reporting: source.Pos and lexer.Token both
// satisfy it.
type SourcePos interface {
	SourceName() string
	Line() int
	Col() int
}

// NewError creates an Error. name, line, and col are appended to msg
// when all three are non-zero/non-empty.
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates an Error with no source/position information.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates an Error tied to a source position.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
