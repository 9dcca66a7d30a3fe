package langdef

import (
	"fmt"
	"strings"

	"github.com/hadrian-reppas/zparse/ast"
	"github.com/hadrian-reppas/zparse/grammar"
)

// implicitToken is one literal collected directly out of a rule body,
// promoted to a token in its own right.
type implicitToken struct {
	Name  string
	Value string
}

// collectImplicitTokens walks every alternative of every rule and
// gathers the string literals appearing in its value, synthesizing a
// deterministic, collision-free name for each. allowMultiChar lifts
// the single-character restriction (invariant 10).
//
// Literals are walked left-to-right through the expression tree rather
// than read out of Expr.Literals() (a set, unordered by construction)
// so that entry order in the synthesized lexer description is stable
// across runs.
func collectImplicitTokens(rules []*grammar.RuleDefinition, allowMultiChar bool) ([]implicitToken, error) {
	seen := make(map[string]bool)
	var out []implicitToken

	for _, rule := range rules {
		for _, alt := range rule.Alternatives {
			for _, lit := range orderedLiterals(alt.Value) {
				if seen[lit] {
					continue
				}
				if !allowMultiChar && len([]rune(lit)) != 1 {
					return nil, multiCharImplicitError(rule.Name.Token)
				}
				seen[lit] = true
				out = append(out, implicitToken{Name: implicitTokenName(lit), Value: lit})
			}
		}
	}

	return out, nil
}

// orderedLiterals walks e depth-first, left to right, returning every
// StringLiteral value in the order it is first encountered.
func orderedLiterals(e ast.Expr) []string {
	var out []string
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch v := e.(type) {
		case *ast.StringLiteral:
			out = append(out, v.Value())
		case *ast.Union:
			for _, c := range v.Values {
				walk(c)
			}
		case *ast.Concatenation:
			for _, c := range v.Values {
				walk(c)
			}
		case *ast.Optional:
			walk(v.Value)
		case *ast.NongreedyOptional:
			walk(v.Value)
		case *ast.Star:
			walk(v.Value)
		case *ast.NongreedyStar:
			walk(v.Value)
		case *ast.Plus:
			walk(v.Value)
		case *ast.NongreedyPlus:
			walk(v.Value)
		}
	}
	walk(e)
	return out
}

// implicitTokenName synthesizes a deterministic token name from a
// literal's codepoints: '_' followed by its underscore-separated hex
// codepoints, e.g. ">" -> "_3e". The leading underscore plus lowercase
// hex digits can never collide with an explicit token name (uppercase,
// no leading underscore) or a fragment name (uppercase after the
// underscore).
func implicitTokenName(value string) string {
	parts := make([]string, 0, len(value))
	for _, r := range value {
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return "_" + strings.Join(parts, "_")
}
