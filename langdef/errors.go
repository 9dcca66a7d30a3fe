package langdef

import (
	"strings"

	"github.com/hadrian-reppas/zparse"
	"github.com/hadrian-reppas/zparse/lexer"
)

// Error codes used by langdef.Parse* and langdef.Synthesize:
const (
	// EOF reached when a token was expected.
	UnexpectedEofError = zparse.SyntaxErrors + iota
	// fetched a token of unexpected kind.
	UnexpectedTokenError
	// ':' found inside an expression body.
	UnexpectedColonError
	// a definition body is empty.
	EmptyDefinitionError
	// a rule, token, or fragment body contains a construct its track does not allow.
	IllegalAtomError
	// an identifier of the wrong class was referenced.
	IllegalRefError
	// '@'/'!' not followed by an identifier.
	DanglingMarkerError
	// '=' without an identifier on each side.
	BadAliasError
	// '-' without a string literal on each side.
	BadRangeError
	// range bound longer than one character.
	RangeBoundLengthError
	// unmatched ')'.
	UnmatchedRParenError
	// '(' never closed.
	UnclosedParenError
	// empty parenthesized group.
	EmptyParensError
	// '*'/'+'/'?' not following an expression.
	DanglingOpError
	// empty alternative between '|'s.
	EmptyAlternativeError
	// trailing item (tag/directive/code) not at the end of an alternative.
	MisplacedTrailerError
	// leading predicate not at the start of an alternative.
	MisplacedPredicateError
	// more than one tag on an alternative.
	MultipleTagsError
	// more than one code snippet on an alternative.
	MultipleCodeError
	// tags present on some alternatives of a rule but not all.
	TagUniformityError
	// fragment referenced but never defined.
	FragmentNotDefinedError
	// fragment dependency graph has a cycle.
	FragmentCycleError
	// multi-character implicit token without the relaxation flag.
	MultiCharImplicitError
	// a token name collides with a reserved name.
	ReservedNameError
	// a token name is defined or declared more than once.
	DuplicateTokenError
	// a synthesized regex failed to compile.
	BadRegexError
)

func unexpectedTokenError(tok *lexer.Token) *zparse.Error {
	if tok.Is(lexer.EOF) {
		return zparse.FormatErrorPos(tok, UnexpectedEofError, "unexpected end of grammar")
	}
	return zparse.FormatErrorPos(tok, UnexpectedTokenError, "unexpected %s", tok.Kind)
}

func unexpectedColonError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, UnexpectedColonError, "grammar error: unexpected colon")
}

func emptyDefinitionError(pos zparse.SourcePos, what string) *zparse.Error {
	return zparse.FormatErrorPos(pos, EmptyDefinitionError, "grammar error: %s definitions cannot be empty", what)
}

func illegalAtomError(pos zparse.SourcePos, msg string) *zparse.Error {
	return zparse.FormatErrorPos(pos, IllegalAtomError, "grammar error: %s", msg)
}

func illegalRefError(pos zparse.SourcePos, msg string) *zparse.Error {
	return zparse.FormatErrorPos(pos, IllegalRefError, "grammar error: %s", msg)
}

func danglingMarkerError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, DanglingMarkerError, "grammar error: %s must be followed by an identifier", tok.Text)
}

func badAliasError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, BadAliasError, "grammar error: = must have an identifier on each side")
}

func badRangeError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, BadRangeError, "grammar error: - must have a string on each side")
}

func rangeBoundLengthError(pos zparse.SourcePos) *zparse.Error {
	return zparse.FormatErrorPos(pos, RangeBoundLengthError, "grammar error: range bounds must be a single character")
}

func unmatchedRParenError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, UnmatchedRParenError, "grammar error: unmatched right parenthesis")
}

func unclosedParenError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, UnclosedParenError, "grammar error: unclosed parenthesis")
}

func emptyParensError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, EmptyParensError, "grammar error: parentheses must contain an expression")
}

func danglingOpError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, DanglingOpError, "grammar error: %s must follow an expression", tok.Text)
}

func emptyAlternativeError(tok *lexer.Token) *zparse.Error {
	return zparse.FormatErrorPos(tok, EmptyAlternativeError, "grammar error: alternatives cannot be empty")
}

func misplacedTrailerError(pos zparse.SourcePos, what string) *zparse.Error {
	return zparse.FormatErrorPos(pos, MisplacedTrailerError, "grammar error: %s must be at the end of an alternative", what)
}

func misplacedPredicateError(pos zparse.SourcePos) *zparse.Error {
	return zparse.FormatErrorPos(pos, MisplacedPredicateError, "grammar error: predicates must be at the start of an alternative")
}

func multipleTagsError(pos zparse.SourcePos) *zparse.Error {
	return zparse.FormatErrorPos(pos, MultipleTagsError, "grammar error: alternatives cannot have multiple tags")
}

func multipleCodeError(pos zparse.SourcePos) *zparse.Error {
	return zparse.FormatErrorPos(pos, MultipleCodeError, "grammar error: alternatives can only have one code snippet")
}

func tagUniformityError(pos zparse.SourcePos) *zparse.Error {
	return zparse.FormatErrorPos(pos, TagUniformityError, "grammar error: all or none of the alternatives should have tags")
}

func fragmentNotDefinedError(pos zparse.SourcePos, name string) *zparse.Error {
	return zparse.FormatErrorPos(pos, FragmentNotDefinedError, "grammar error: fragment %q is not defined", name)
}

func fragmentCycleError(names []string) *zparse.Error {
	return zparse.FormatError(FragmentCycleError, "grammar error: %s cannot be defined recursively", listNames(names))
}

func multiCharImplicitError(pos zparse.SourcePos) *zparse.Error {
	return zparse.FormatErrorPos(pos, MultiCharImplicitError,
		"grammar error: implicit token literal must be a single character unless the relaxation flag is set")
}

func reservedNameError(pos zparse.SourcePos, name string) *zparse.Error {
	return zparse.FormatErrorPos(pos, ReservedNameError, "grammar error: %q is a reserved name", name)
}

func duplicateTokenError(pos zparse.SourcePos, name string) *zparse.Error {
	return zparse.FormatErrorPos(pos, DuplicateTokenError, "grammar error: token %q already declared or defined", name)
}

func badRegexError(pos zparse.SourcePos, name string, cause error) *zparse.Error {
	if pos == nil {
		return zparse.FormatError(BadRegexError, "grammar error: synthesized pattern for %q does not compile: %s", name, cause)
	}
	return zparse.FormatErrorPos(pos, BadRegexError, "grammar error: synthesized pattern for %q does not compile: %s", name, cause)
}

// listNames renders names with the "X" / "X and Y" / "X, Y, ..., and
// Z" conjunctions used by cycle diagnostics.
func listNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	switch len(quoted) {
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " and " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", and " + quoted[len(quoted)-1]
	}
}
