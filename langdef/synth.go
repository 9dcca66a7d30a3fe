package langdef

import (
	"regexp"

	"github.com/hadrian-reppas/zparse"
	"github.com/hadrian-reppas/zparse/ast"
	"github.com/hadrian-reppas/zparse/grammar"
)

// reservedTagNames names the emitted Go-side lexer surface
// (grammar.LexerDescription, grammar.TokenEntry, and the Tokenize
// entry point) plus the reserved token name EOF; a tag may not shadow
// any of them. TokenEntry's field names are not reserved.
var reservedTagNames = map[string]bool{
	"EOF":              true,
	"TokenEntry":       true,
	"LexerDescription": true,
	"Tokenize":         true,
}

const eofTokenName = "EOF"

// Synthesize builds the longest-match lexer description for g:
// fragments are resolved in topological order, implicit tokens are
// collected from rule bodies, and both feed an ordered list of
// TokenEntry (implicit tokens first, then explicit definitions in
// source order). allowMultiCharImplicit lifts the single-character
// restriction on implicit tokens (invariant 10).
func Synthesize(g *grammar.Grammar, allowMultiCharImplicit bool) (*grammar.LexerDescription, error) {
	orderedFrags, err := orderFragments(g.FragmentDefinitions)
	if err != nil {
		return nil, err
	}

	fragments := make(map[string]string, len(orderedFrags))
	for _, f := range orderedFrags {
		re, err := f.Value.ToRegex(fragments)
		if err != nil {
			return nil, err
		}
		fragments[f.Name.Name] = re
	}

	if err := checkReservedAndDuplicateNames(g); err != nil {
		return nil, err
	}

	implicitToks, err := collectImplicitTokens(g.RuleDefinitions, allowMultiCharImplicit)
	if err != nil {
		return nil, err
	}

	entries := make([]grammar.TokenEntry, 0, len(implicitToks)+len(g.TokenDefinitions))
	for _, it := range implicitToks {
		entry, err := compileEntry(nil, it.Name, ast.EscapeImplicitRegex(it.Value))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	for _, td := range g.TokenDefinitions {
		re, err := td.Value.ToRegex(fragments)
		if err != nil {
			return nil, err
		}
		entry, err := compileEntry(td.Name.Token, td.Name.Name, re)
		if err != nil {
			return nil, err
		}
		if td.Tag != nil {
			entry.TagHook = td.Tag.Name.Name
		}
		if td.Predicate != nil {
			entry.Predicate = td.Predicate.Code.Token.Text
		}
		entries = append(entries, entry)
	}

	return &grammar.LexerDescription{Entries: entries}, nil
}

// compileEntry anchors re at the match start and compiles it, pinning
// any compile failure to pos (absent for implicit tokens, whose
// pattern is always a literal escape and cannot fail to compile).
func compileEntry(pos zparse.SourcePos, name, re string) (grammar.TokenEntry, error) {
	compiled, err := regexp.Compile(`^(?:` + re + `)`)
	if err != nil {
		return grammar.TokenEntry{}, badRegexError(pos, name, err)
	}
	return grammar.TokenEntry{Name: name, Regex: compiled, RegexSource: re}, nil
}

func checkReservedAndDuplicateNames(g *grammar.Grammar) error {
	seen := make(map[string]bool)
	add := func(name string, pos zparse.SourcePos) error {
		if name == eofTokenName {
			return reservedNameError(pos, name)
		}
		if seen[name] {
			return duplicateTokenError(pos, name)
		}
		seen[name] = true
		return nil
	}

	for _, decl := range g.TokenDeclarations {
		if err := add(decl.Name.Name, decl.Name.Token); err != nil {
			return err
		}
	}
	for _, def := range g.TokenDefinitions {
		if err := add(def.Name.Name, def.Name.Token); err != nil {
			return err
		}
		if def.Tag != nil && reservedTagNames[def.Tag.Name.Name] {
			return reservedNameError(def.Tag.Name.Token, def.Tag.Name.Name)
		}
	}
	for _, rule := range g.RuleDefinitions {
		for _, alt := range rule.Alternatives {
			if alt.Tag != nil && reservedTagNames[alt.Tag.Name.Name] {
				return reservedNameError(alt.Tag.Name.Token, alt.Tag.Name.Name)
			}
		}
	}
	return nil
}
