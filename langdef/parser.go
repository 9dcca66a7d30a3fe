// Package langdef parses a grammar description into a grammar.Grammar
// and synthesizes a grammar.LexerDescription from it.
package langdef

import (
	"github.com/hadrian-reppas/zparse/ast"
	"github.com/hadrian-reppas/zparse/grammar"
	"github.com/hadrian-reppas/zparse/lexer"
	"github.com/hadrian-reppas/zparse/source"
)

// ParseString parses a grammar description held in a string.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes parses a grammar description held in a byte slice.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses a grammar description. Returns nil and a *zparse.Error
// on failure.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	p := &parser{tok: lexer.New(s)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parse(s)
}

// parser holds the one-token lookahead state over a Tokenizer: peek
// always names the token not yet consumed.
type parser struct {
	tok  *lexer.Tokenizer
	peek *lexer.Token
}

func (p *parser) advance() error {
	t, err := p.tok.Next()
	if err != nil {
		return err
	}
	p.peek = t
	return nil
}

// fetch consumes and returns the lookahead token, then refills it.
func (p *parser) fetch() (*lexer.Token, error) {
	t := p.peek
	if err := p.advance(); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *parser) parse(s *source.Source) (*grammar.Grammar, error) {
	g := &grammar.Grammar{Source: string(s.Content())}

	for {
		switch {
		case p.peek.Is(lexer.NEWRULE):
			if _, err := p.fetch(); err != nil {
				return nil, err
			}
			if !p.peek.Is(lexer.ID) {
				return nil, unexpectedTokenError(p.peek)
			}
			nameTok, err := p.fetch()
			if err != nil {
				return nil, err
			}
			name := ast.NewIdentifier(nameTok)

			switch {
			case p.peek.Is(lexer.COLON):
				switch {
				case name.IsRule():
					if err := p.parseRuleDef(g, name); err != nil {
						return nil, err
					}
				case name.IsToken():
					if err := p.parseTokenDef(g, name); err != nil {
						return nil, err
					}
				default:
					if err := p.parseFragmentDef(g, name); err != nil {
						return nil, err
					}
				}
			case p.peek.Is(lexer.NEWRULE) || p.peek.Is(lexer.EOF):
				g.TokenDeclarations = append(g.TokenDeclarations, &grammar.TokenDeclaration{Name: name})
			default:
				return nil, unexpectedTokenError(p.peek)
			}

		case p.peek.Is(lexer.EOF):
			return g, nil

		default:
			return nil, unexpectedTokenError(p.peek)
		}
	}
}

// collectExprTokens gathers raw tokens up to (not including) the next
// NEWRULE or EOF. A COLON found along the way is an error.
func (p *parser) collectExprTokens() ([]*lexer.Token, error) {
	var toks []*lexer.Token
	for !p.peek.Is(lexer.NEWRULE) && !p.peek.Is(lexer.EOF) {
		if p.peek.Is(lexer.COLON) {
			return nil, unexpectedColonError(p.peek)
		}
		t, err := p.fetch()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
	}
	return toks, nil
}

func (p *parser) expectColon() (*lexer.Token, error) {
	if !p.peek.Is(lexer.COLON) {
		return nil, unexpectedTokenError(p.peek)
	}
	return p.fetch()
}

func (p *parser) parseRuleDef(g *grammar.Grammar, name *ast.Identifier) error {
	colon, err := p.expectColon()
	if err != nil {
		return err
	}
	toks, err := p.collectExprTokens()
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return emptyDefinitionError(colon, "rule")
	}
	for _, t := range toks {
		if t.Kind == lexer.DASH {
			return illegalAtomError(t, "rule definitions cannot contain ranges")
		}
		if t.Kind == lexer.DOT {
			return illegalAtomError(t, "rule definitions cannot contain wildcards")
		}
	}

	items := liftAtoms(toks)
	items, err = foldTagsDirectivesPredicates(items, true)
	if err != nil {
		return err
	}
	for _, it := range items {
		if id, ok := it.isIdentifier(); ok && id.IsFragment() {
			return illegalRefError(id.Token, "rule definitions cannot contain fragment references")
		}
	}
	items, err = foldAliases(items)
	if err != nil {
		return err
	}
	items, err = handleParentheses(items)
	if err != nil {
		return err
	}
	items, err = handleOps(items)
	if err != nil {
		return err
	}
	alts, err := makeAlternatives(items)
	if err != nil {
		return err
	}

	g.RuleDefinitions = append(g.RuleDefinitions, &grammar.RuleDefinition{Name: name, Alternatives: alts})
	return nil
}

func (p *parser) parseTokenDef(g *grammar.Grammar, name *ast.Identifier) error {
	_, err := p.expectColon()
	if err != nil {
		return err
	}
	toks, err := p.collectExprTokens()
	if err != nil {
		return err
	}
	for _, t := range toks {
		switch t.Kind {
		case lexer.BAM:
			return illegalAtomError(t, "token definitions cannot contain directives")
		case lexer.EQUALS:
			return illegalAtomError(t, "token definitions cannot contain aliases")
		case lexer.DOT:
			return illegalAtomError(t, "token definitions cannot contain wildcards")
		}
	}

	items := liftAtoms(toks)
	items, tag, predicate, err := extractTokenThings(items, name)
	if err != nil {
		return err
	}
	for _, it := range items {
		if id, ok := it.isIdentifier(); ok {
			if id.IsRule() {
				return illegalRefError(id.Token, "token definitions cannot contain rule references")
			}
			if id.IsToken() {
				return illegalRefError(id.Token, "token definitions cannot contain token references")
			}
		}
	}
	items, err = foldRanges(items)
	if err != nil {
		return err
	}
	value, err := recursivelyParse(items)
	if err != nil {
		return err
	}

	g.TokenDefinitions = append(g.TokenDefinitions, &grammar.TokenDefinition{
		Name: name, Value: value, Tag: tag, Predicate: predicate,
	})
	return nil
}

func (p *parser) parseFragmentDef(g *grammar.Grammar, name *ast.Identifier) error {
	_, err := p.expectColon()
	if err != nil {
		return err
	}
	toks, err := p.collectExprTokens()
	if err != nil {
		return err
	}
	for _, t := range toks {
		switch t.Kind {
		case lexer.CODE:
			return illegalAtomError(t, "fragment definitions cannot contain code snippets")
		case lexer.BAM:
			return illegalAtomError(t, "fragment definitions cannot contain directives")
		case lexer.AT:
			return illegalAtomError(t, "fragment definitions cannot contain tags")
		case lexer.EQUALS:
			return illegalAtomError(t, "fragment definitions cannot contain aliases")
		case lexer.ID:
			id := ast.NewIdentifier(t)
			if id.IsRule() {
				return illegalRefError(t, "fragment definitions cannot contain rule references")
			}
			if id.IsToken() {
				return illegalRefError(t, "fragment definitions cannot contain token references")
			}
		}
	}

	items := liftAtoms(toks)
	items, err = foldRanges(items)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return emptyDefinitionError(name.Token, "fragment")
	}
	value, err := recursivelyParse(items)
	if err != nil {
		return err
	}

	g.FragmentDefinitions = append(g.FragmentDefinitions, &grammar.FragmentDefinition{Name: name, Value: value})
	return nil
}
