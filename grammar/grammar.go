// Package grammar holds the validated output of a parsed grammar
// description: its rule/token/fragment definitions, and the
// synthesized lexer description derived from them.
package grammar

import (
	"regexp"

	"github.com/hadrian-reppas/zparse/ast"
)

// RuleDefinition is `name ':' alternatives`, name starting lowercase.
type RuleDefinition struct {
	Name         *ast.Identifier
	Alternatives []*ast.Alternative
}

// TokenDefinition is `NAME ':' expr`, NAME all-uppercase without a
// leading underscore. Alternation, if any, lives inside Value.
type TokenDefinition struct {
	Name      *ast.Identifier
	Value     ast.Expr
	Tag       *ast.Tag
	Predicate *ast.Predicate
}

// FragmentDefinition is `_NAME ':' expr`.
type FragmentDefinition struct {
	Name  *ast.Identifier
	Value ast.Expr
}

// TokenDeclaration is a bare `NAME` on its own line: a forward
// declaration of a token name with no body.
type TokenDeclaration struct {
	Name *ast.Identifier
}

// Grammar is the full result of parsing one grammar description: its
// definitions, plus the original source text for diagnostics and
// round-tripping.
type Grammar struct {
	TokenDeclarations   []*TokenDeclaration
	FragmentDefinitions []*FragmentDefinition
	TokenDefinitions    []*TokenDefinition
	RuleDefinitions     []*RuleDefinition
	Source              string
}

// TokenEntry is one row of a synthesized lexer description: a token
// name, its compiled pattern, and the optional hook names a host must
// supply to interpret it. TagHook and Predicate are opaque strings
// (host source snippets); this package never evaluates them itself —
// see Host and Tokenize.
type TokenEntry struct {
	Name        string
	Regex       *regexp.Regexp // anchored at the match start
	RegexSource string         // the uncompiled pattern, for diagnostics/dumps
	TagHook     string         // "" if the entry has no tag
	Predicate   string         // "" if the entry is unconditional
}

// LexerDescription is the downstream interface: an ordered list of
// TokenEntry values implementing longest-match, first-declared-wins
// lexing. Implicit tokens (collected from rule bodies) come first, in
// collection order; explicit token definitions follow in source
// order.
type LexerDescription struct {
	Entries []TokenEntry
}
