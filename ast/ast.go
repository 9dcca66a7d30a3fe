// Package ast defines the typed grammar expression tree produced by
// parsing a rule, token, or fragment body.
package ast

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hadrian-reppas/zparse"
	"github.com/hadrian-reppas/zparse/lexer"
)

// Expr is a grammar expression: an identifier reference, a literal, a
// character range, the wildcard, or a compound built from smaller
// Exprs (union, concatenation, quantifiers, alias).
type Expr interface {
	// ToRegex synthesizes an ECMA/PCRE-style regex fragment for this
	// expression. fragments maps fragment names to their already
	// synthesized regex text; referencing an undefined fragment is a
	// grammar error.
	ToRegex(fragments map[string]string) (string, error)

	// Identifiers returns the set of identifier names (rule, token, or
	// fragment references) appearing anywhere in this expression.
	Identifiers() map[string]struct{}

	// Literals returns the set of decoded string-literal values
	// appearing anywhere in this expression.
	Literals() map[string]struct{}
}

func unionSets(sets ...map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}

var escapeRegexChars = map[rune]bool{
	'.': true, '^': true, '$': true, '*': true, '+': true, '?': true,
	'{': true, '}': true, '\\': true, '[': true, ']': true, '|': true,
}

var escapeImplicitChars = map[rune]bool{
	'.': true, '^': true, '$': true, '*': true, '+': true, '?': true,
	'{': true, '}': true, '(': true, ')': true, '\\': true, '[': true,
	']': true, '|': true,
}

// EscapeImplicitRegex regex-escapes the decoded value of an implicit
// token collected out of a rule body. Unlike a StringLiteral's ToRegex,
// it also escapes parentheses, so literals like '(' yield a compilable
// pattern.
func EscapeImplicitRegex(value string) string {
	return escapeWith(value, escapeImplicitChars)
}

func escapeLiteral(value string) string {
	return escapeWith(value, escapeRegexChars)
}

func escapeWith(value string, escape map[rune]bool) string {
	var b strings.Builder
	for _, c := range value {
		if escape[c] {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Identifier references a rule, token, or fragment by name. Which kind
// it is follows purely from its spelling, not from a declared type:
// lowercase-first is a rule, all-uppercase is a token, and
// all-uppercase with a leading underscore is a fragment.
type Identifier struct {
	Name  string
	Token *lexer.Token
}

// NewIdentifier builds an Identifier from the token that spelled it.
func NewIdentifier(tok *lexer.Token) *Identifier {
	return &Identifier{Name: tok.Text, Token: tok}
}

// IsRule reports whether the name denotes a rule.
func (i *Identifier) IsRule() bool { return !isAllUpper(i.Name) }

// IsToken reports whether the name denotes a token.
func (i *Identifier) IsToken() bool {
	return isAllUpper(i.Name) && !strings.HasPrefix(i.Name, "_")
}

// IsFragment reports whether the name denotes a fragment.
func (i *Identifier) IsFragment() bool {
	return isAllUpper(i.Name) && strings.HasPrefix(i.Name, "_")
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, c := range s {
		if c >= 'a' && c <= 'z' {
			return false
		}
		if c >= 'A' && c <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func (i *Identifier) ToRegex(fragments map[string]string) (string, error) {
	re, ok := fragments[i.Name]
	if !ok {
		return "", zparse.FormatErrorPos(i.Token, fragmentNotDefinedCode,
			"grammar error: fragment %q is not defined", i.Name)
	}
	return re, nil
}

func (i *Identifier) Identifiers() map[string]struct{} {
	return map[string]struct{}{i.Name: {}}
}

func (i *Identifier) Literals() map[string]struct{} { return map[string]struct{}{} }

// StringLiteral is a quoted character sequence.
type StringLiteral struct {
	value string
	Token *lexer.Token
}

// NewStringLiteral decodes tok's quoted text (a leading and trailing
// quote character, backslash introducing an escape sequence) into its
// logical value.
func NewStringLiteral(tok *lexer.Token) *StringLiteral {
	return &StringLiteral{value: decodeQuoted(tok.Text), Token: tok}
}

var namedEscapes = map[rune]rune{
	'n': '\n', 't': '\t', 'r': '\r', 'b': '\b', 'f': '\f',
	'a': '\a', 'v': '\v', '0': 0,
}

// decodeQuoted evaluates the escape sequences a quoted literal may
// carry: \n \t \r \b \f \a \v \0, \xHH, \uHHHH, \UHHHHHHHH, and \\
// \' \". A backslash before any other character escapes that character
// verbatim.
func decodeQuoted(text string) string {
	if len(text) < 2 {
		return ""
	}
	inner := text[1 : len(text)-1]
	var b strings.Builder
	runes := []rune(inner)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 == len(runes) {
			b.WriteRune(runes[i])
			continue
		}

		i++
		c := runes[i]
		if r, ok := namedEscapes[c]; ok {
			b.WriteRune(r)
			continue
		}

		var digits int
		switch c {
		case 'x':
			digits = 2
		case 'u':
			digits = 4
		case 'U':
			digits = 8
		}
		if digits > 0 && i+digits < len(runes) {
			if r, ok := hexRune(runes[i+1 : i+1+digits]); ok {
				b.WriteRune(r)
				i += digits
				continue
			}
		}

		b.WriteRune(c)
	}
	return b.String()
}

func hexRune(digits []rune) (rune, bool) {
	var r rune
	for _, d := range digits {
		switch {
		case d >= '0' && d <= '9':
			r = r<<4 | (d - '0')
		case d >= 'a' && d <= 'f':
			r = r<<4 | (d - 'a' + 10)
		case d >= 'A' && d <= 'F':
			r = r<<4 | (d - 'A' + 10)
		default:
			return 0, false
		}
	}
	if r > unicode.MaxRune {
		return 0, false
	}
	return r, true
}

// Value returns the decoded literal value.
func (s *StringLiteral) Value() string { return s.value }

func (s *StringLiteral) ToRegex(map[string]string) (string, error) {
	return escapeLiteral(s.value), nil
}

func (s *StringLiteral) Identifiers() map[string]struct{} { return map[string]struct{}{} }

func (s *StringLiteral) Literals() map[string]struct{} {
	return map[string]struct{}{s.value: {}}
}

// Range matches any single character between Low and High, inclusive.
type Range struct {
	Low, High *StringLiteral
	Dash      *lexer.Token
}

func (r *Range) ToRegex(map[string]string) (string, error) {
	low, high := []rune(r.Low.Value()), []rune(r.High.Value())
	lo, hi := low[0], high[0]
	if hi < lo {
		lo, hi = hi, lo
	}
	loStr, hiStr := escapeRangeBound(lo), escapeRangeBound(hi)
	return fmt.Sprintf("[%s-%s]", loStr, hiStr), nil
}

func escapeRangeBound(c rune) string {
	switch c {
	case ']':
		return "\\]"
	case '^':
		return "\\^"
	default:
		return string(c)
	}
}

func (r *Range) Identifiers() map[string]struct{} { return map[string]struct{}{} }
func (r *Range) Literals() map[string]struct{}    { return map[string]struct{}{} }

// Alias binds a local name to a rule or token reference, usable anywhere an
// expression may appear within a rule body.
type Alias struct {
	AliasName *Identifier
	Name      *Identifier
	Dash      *lexer.Token
}

func (a *Alias) ToRegex(fragments map[string]string) (string, error) {
	return a.Name.ToRegex(fragments)
}

func (a *Alias) Identifiers() map[string]struct{} { return a.Name.Identifiers() }
func (a *Alias) Literals() map[string]struct{}    { return map[string]struct{}{} }

// Any matches any single character.
type Any struct {
	Token *lexer.Token
}

func (a *Any) ToRegex(map[string]string) (string, error) { return ".", nil }
func (a *Any) Identifiers() map[string]struct{}           { return map[string]struct{}{} }
func (a *Any) Literals() map[string]struct{}              { return map[string]struct{}{} }

// Union matches any one of Values (alternation).
type Union struct {
	Values []Expr
	Ors    []*lexer.Token
}

func (u *Union) ToRegex(fragments map[string]string) (string, error) {
	parts := make([]string, len(u.Values))
	for i, v := range u.Values {
		re, err := v.ToRegex(fragments)
		if err != nil {
			return "", err
		}
		parts[i] = "(" + re + ")"
	}
	return "(" + strings.Join(parts, "|") + ")", nil
}

func (u *Union) Identifiers() map[string]struct{} {
	sets := make([]map[string]struct{}, len(u.Values))
	for i, v := range u.Values {
		sets[i] = v.Identifiers()
	}
	return unionSets(sets...)
}

func (u *Union) Literals() map[string]struct{} {
	sets := make([]map[string]struct{}, len(u.Values))
	for i, v := range u.Values {
		sets[i] = v.Literals()
	}
	return unionSets(sets...)
}

// Concatenation matches Values in sequence.
type Concatenation struct {
	Values []Expr
}

func (c *Concatenation) ToRegex(fragments map[string]string) (string, error) {
	var b strings.Builder
	for _, v := range c.Values {
		re, err := v.ToRegex(fragments)
		if err != nil {
			return "", err
		}
		b.WriteString(re)
	}
	return "(" + b.String() + ")", nil
}

func (c *Concatenation) Identifiers() map[string]struct{} {
	sets := make([]map[string]struct{}, len(c.Values))
	for i, v := range c.Values {
		sets[i] = v.Identifiers()
	}
	return unionSets(sets...)
}

func (c *Concatenation) Literals() map[string]struct{} {
	sets := make([]map[string]struct{}, len(c.Values))
	for i, v := range c.Values {
		sets[i] = v.Literals()
	}
	return unionSets(sets...)
}

func quantified(value Expr, fragments map[string]string, suffix string) (string, error) {
	re, err := value.ToRegex(fragments)
	if err != nil {
		return "", err
	}
	return "(" + re + ")" + suffix, nil
}

// Optional matches Value zero or one times, greedily.
type Optional struct {
	Value Expr
	Qmark *lexer.Token
}

func (o *Optional) ToRegex(fragments map[string]string) (string, error) {
	return quantified(o.Value, fragments, "?")
}
func (o *Optional) Identifiers() map[string]struct{} { return o.Value.Identifiers() }
func (o *Optional) Literals() map[string]struct{}    { return o.Value.Literals() }

// NongreedyOptional matches Value zero or one times, non-greedily.
type NongreedyOptional struct {
	Value          Expr
	Qmark1, Qmark2 *lexer.Token
}

func (o *NongreedyOptional) ToRegex(fragments map[string]string) (string, error) {
	return quantified(o.Value, fragments, "??")
}
func (o *NongreedyOptional) Identifiers() map[string]struct{} { return o.Value.Identifiers() }
func (o *NongreedyOptional) Literals() map[string]struct{}    { return o.Value.Literals() }

// Star matches Value zero or more times, greedily.
type Star struct {
	Value Expr
	Token *lexer.Token
}

func (s *Star) ToRegex(fragments map[string]string) (string, error) {
	return quantified(s.Value, fragments, "*")
}
func (s *Star) Identifiers() map[string]struct{} { return s.Value.Identifiers() }
func (s *Star) Literals() map[string]struct{}    { return s.Value.Literals() }

// NongreedyStar matches Value zero or more times, non-greedily.
type NongreedyStar struct {
	Value       Expr
	Star, Qmark *lexer.Token
}

func (s *NongreedyStar) ToRegex(fragments map[string]string) (string, error) {
	return quantified(s.Value, fragments, "*?")
}
func (s *NongreedyStar) Identifiers() map[string]struct{} { return s.Value.Identifiers() }
func (s *NongreedyStar) Literals() map[string]struct{}    { return s.Value.Literals() }

// Plus matches Value one or more times, greedily.
type Plus struct {
	Value Expr
	Token *lexer.Token
}

func (p *Plus) ToRegex(fragments map[string]string) (string, error) {
	return quantified(p.Value, fragments, "+")
}
func (p *Plus) Identifiers() map[string]struct{} { return p.Value.Identifiers() }
func (p *Plus) Literals() map[string]struct{}    { return p.Value.Literals() }

// NongreedyPlus matches Value one or more times, non-greedily.
type NongreedyPlus struct {
	Value       Expr
	Plus, Qmark *lexer.Token
}

func (p *NongreedyPlus) ToRegex(fragments map[string]string) (string, error) {
	return quantified(p.Value, fragments, "+?")
}
func (p *NongreedyPlus) Identifiers() map[string]struct{} { return p.Value.Identifiers() }
func (p *NongreedyPlus) Literals() map[string]struct{}    { return p.Value.Literals() }

// Tag names the host-code hook invoked when an alternative matches.
type Tag struct {
	Name *Identifier
	At   *lexer.Token
}

// Directive names a per-alternative flag, carried through
// uninterpreted.
type Directive struct {
	Name *Identifier
	Bam  *lexer.Token
}

// InlineCode is a raw host-code snippet, passed through uninterpreted.
type InlineCode struct {
	Token *lexer.Token
}

// Predicate is a semantic guard evaluated before an alternative may be
// taken.
type Predicate struct {
	Code  *InlineCode
	Qmark *lexer.Token
}

// Alternative is one production of a rule: the expression it matches
// plus the optional tag, directives, inline code, and predicate
// attached to it.
type Alternative struct {
	Value      Expr
	Tag        *Tag
	Directives []*Directive
	Code       *InlineCode
	Predicate  *Predicate
}
