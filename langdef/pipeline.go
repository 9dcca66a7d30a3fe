package langdef

import (
	"github.com/hadrian-reppas/zparse"
	"github.com/hadrian-reppas/zparse/ast"
	"github.com/hadrian-reppas/zparse/lexer"
)

// item is one element of the mixed list each parsing pass operates on:
// either a raw token not yet reduced, or one of the partially-reduced
// node kinds an earlier pass produced.
type item struct {
	tok  *lexer.Token
	expr ast.Expr
	tag  *ast.Tag
	dir  *ast.Directive
	pred *ast.Predicate
	code *ast.InlineCode
}

func tokItem(t *lexer.Token) item     { return item{tok: t} }
func exprItem(e ast.Expr) item        { return item{expr: e} }
func tagItem(t *ast.Tag) item         { return item{tag: t} }
func dirItem(d *ast.Directive) item   { return item{dir: d} }
func predItem(p *ast.Predicate) item  { return item{pred: p} }
func codeItem(c *ast.InlineCode) item { return item{code: c} }

func (it item) isTok(k lexer.Kind) bool { return it.tok != nil && it.tok.Kind == k }
func (it item) isExpr() bool            { return it.expr != nil }
func (it item) isIdentifier() (*ast.Identifier, bool) {
	id, ok := it.expr.(*ast.Identifier)
	return id, ok
}
func (it item) isStringLiteral() (*ast.StringLiteral, bool) {
	s, ok := it.expr.(*ast.StringLiteral)
	return s, ok
}
func (it item) isInlineCode() bool { return it.code != nil }
func (it item) isTag() bool        { return it.tag != nil }
func (it item) isDirective() bool  { return it.dir != nil }
func (it item) isPredicate() bool  { return it.pred != nil }

// pos returns a position usable for a diagnostic pinned to it.
func (it item) pos() zparse.SourcePos {
	switch {
	case it.tok != nil:
		return it.tok
	case it.tag != nil:
		return it.tag.At
	case it.dir != nil:
		return it.dir.Bam
	case it.pred != nil:
		return it.pred.Qmark
	case it.code != nil:
		return it.code.Token
	default:
		return exprPos(it.expr)
	}
}

// exprPos digs out a representative token from an Expr for diagnostics.
func exprPos(e ast.Expr) zparse.SourcePos {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Token
	case *ast.StringLiteral:
		return v.Token
	case *ast.Range:
		return v.Dash
	case *ast.Alias:
		return v.Dash
	case *ast.Any:
		return v.Token
	case *ast.Union:
		if len(v.Values) > 0 {
			return exprPos(v.Values[0])
		}
	case *ast.Concatenation:
		if len(v.Values) > 0 {
			return exprPos(v.Values[0])
		}
	case *ast.Optional:
		return exprPos(v.Value)
	case *ast.NongreedyOptional:
		return exprPos(v.Value)
	case *ast.Star:
		return exprPos(v.Value)
	case *ast.NongreedyStar:
		return exprPos(v.Value)
	case *ast.Plus:
		return exprPos(v.Value)
	case *ast.NongreedyPlus:
		return exprPos(v.Value)
	}
	return nil
}

// liftAtoms turns raw ID/STRING/CODE tokens into Identifier,
// StringLiteral, and InlineCode leaf nodes; every other token passes
// through unchanged.
func liftAtoms(toks []*lexer.Token) []item {
	out := make([]item, len(toks))
	for i, t := range toks {
		switch t.Kind {
		case lexer.ID:
			out[i] = exprItem(ast.NewIdentifier(t))
		case lexer.STRING:
			out[i] = exprItem(ast.NewStringLiteral(t))
		case lexer.CODE:
			out[i] = codeItem(&ast.InlineCode{Token: t})
		case lexer.DOT:
			out[i] = exprItem(&ast.Any{Token: t})
		default:
			out[i] = tokItem(t)
		}
	}
	return out
}

// foldTagsDirectivesPredicates folds '@ID' into a Tag, '!ID' into a
// Directive, and a trailing '?' after an InlineCode into a Predicate.
// allowDirectives gates whether '!' is recognized (token bodies don't
// allow directives).
func foldTagsDirectivesPredicates(items []item, allowDirectives bool) ([]item, error) {
	var out []item
	for i := 0; i < len(items); i++ {
		it := items[i]
		switch {
		case it.isTok(lexer.AT):
			if i+1 == len(items) {
				return nil, danglingMarkerError(it.tok)
			}
			id, ok := items[i+1].isIdentifier()
			if !ok {
				return nil, danglingMarkerError(it.tok)
			}
			out = append(out, tagItem(&ast.Tag{Name: id, At: it.tok}))
			i++
		case allowDirectives && it.isTok(lexer.BAM):
			if i+1 == len(items) {
				return nil, danglingMarkerError(it.tok)
			}
			id, ok := items[i+1].isIdentifier()
			if !ok {
				return nil, danglingMarkerError(it.tok)
			}
			out = append(out, dirItem(&ast.Directive{Name: id, Bam: it.tok}))
			i++
		case it.isTok(lexer.QMARK) && len(out) > 0 && out[len(out)-1].isInlineCode():
			code := out[len(out)-1].code
			out = out[:len(out)-1]
			out = append(out, predItem(&ast.Predicate{Code: code, Qmark: it.tok}))
		default:
			out = append(out, it)
		}
	}
	return out, nil
}

// foldAliases folds 'ID = ID' into an Alias.
func foldAliases(items []item) ([]item, error) {
	var out []item
	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.isTok(lexer.EQUALS) {
			if len(out) == 0 || i+1 == len(items) {
				return nil, badAliasError(it.tok)
			}
			left, ok1 := out[len(out)-1].isIdentifier()
			right, ok2 := items[i+1].isIdentifier()
			if !ok1 || !ok2 {
				return nil, badAliasError(it.tok)
			}
			out = out[:len(out)-1]
			out = append(out, exprItem(&ast.Alias{AliasName: left, Name: right, Dash: it.tok}))
			i++
		} else {
			out = append(out, it)
		}
	}
	return out, nil
}

// foldRanges folds 'STRING - STRING' into a Range, requiring
// single-character bounds.
func foldRanges(items []item) ([]item, error) {
	var out []item
	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.isTok(lexer.DASH) {
			if len(out) == 0 || i+1 == len(items) {
				return nil, badRangeError(it.tok)
			}
			low, ok1 := out[len(out)-1].isStringLiteral()
			high, ok2 := items[i+1].isStringLiteral()
			if !ok1 || !ok2 {
				return nil, badRangeError(it.tok)
			}
			if len([]rune(low.Value())) != 1 {
				return nil, rangeBoundLengthError(low.Token)
			}
			if len([]rune(high.Value())) != 1 {
				return nil, rangeBoundLengthError(high.Token)
			}
			out = out[:len(out)-1]
			out = append(out, exprItem(&ast.Range{Low: low, High: high, Dash: it.tok}))
			i++
		} else {
			out = append(out, it)
		}
	}
	return out, nil
}

// handleParentheses replaces each balanced, non-nested-at-top-level
// '(' ... ')' span with the result of recursively parsing its
// contents.
func handleParentheses(items []item) ([]item, error) {
	var out []item
	var inParens []item
	var leftParen *lexer.Token
	depth := 0
	for _, it := range items {
		switch {
		case it.isTok(lexer.LPAREN):
			if depth > 0 {
				inParens = append(inParens, it)
			} else {
				inParens = nil
				leftParen = it.tok
			}
			depth++
		case it.isTok(lexer.RPAREN):
			if depth == 0 {
				return nil, unmatchedRParenError(it.tok)
			}
			depth--
			if depth == 0 {
				if len(inParens) == 0 {
					return nil, emptyParensError(it.tok)
				}
				sub, err := recursivelyParse(inParens)
				if err != nil {
					return nil, err
				}
				out = append(out, exprItem(sub))
			} else {
				inParens = append(inParens, it)
			}
		case depth > 0:
			inParens = append(inParens, it)
		default:
			out = append(out, it)
		}
	}
	if depth > 0 {
		return nil, unclosedParenError(leftParen)
	}
	return out, nil
}

// handleOps applies postfix '*', '+', '?' (each optionally followed by
// a second '?' for the non-greedy variant) to the preceding expression.
func handleOps(items []item) ([]item, error) {
	var out []item
	for i := 0; i < len(items); i++ {
		it := items[i]
		nongreedy := i+1 < len(items) && items[i+1].isTok(lexer.QMARK)

		switch {
		case it.isTok(lexer.STAR):
			if len(out) == 0 || !out[len(out)-1].isExpr() {
				return nil, danglingOpError(it.tok)
			}
			value := out[len(out)-1].expr
			out = out[:len(out)-1]
			if nongreedy {
				out = append(out, exprItem(&ast.NongreedyStar{Value: value, Star: it.tok, Qmark: items[i+1].tok}))
				i++
			} else {
				out = append(out, exprItem(&ast.Star{Value: value, Token: it.tok}))
			}
		case it.isTok(lexer.PLUS):
			if len(out) == 0 || !out[len(out)-1].isExpr() {
				return nil, danglingOpError(it.tok)
			}
			value := out[len(out)-1].expr
			out = out[:len(out)-1]
			if nongreedy {
				out = append(out, exprItem(&ast.NongreedyPlus{Value: value, Plus: it.tok, Qmark: items[i+1].tok}))
				i++
			} else {
				out = append(out, exprItem(&ast.Plus{Value: value, Token: it.tok}))
			}
		case it.isTok(lexer.QMARK):
			if len(out) == 0 || !out[len(out)-1].isExpr() {
				return nil, danglingOpError(it.tok)
			}
			value := out[len(out)-1].expr
			out = out[:len(out)-1]
			if nongreedy {
				out = append(out, exprItem(&ast.NongreedyOptional{Value: value, Qmark1: it.tok, Qmark2: items[i+1].tok}))
				i++
			} else {
				out = append(out, exprItem(&ast.Optional{Value: value, Qmark: it.tok}))
			}
		default:
			out = append(out, it)
		}
	}
	return out, nil
}

// splitOnOr splits items into OR-separated groups, rejecting empty
// groups. The last OR token is kept for diagnostics when the trailing
// group is empty.
func splitOnOr(items []item) ([][]item, error) {
	groups := [][]item{{}}
	var lastOr *lexer.Token
	for _, it := range items {
		if it.isTok(lexer.OR) {
			if len(groups[len(groups)-1]) == 0 {
				return nil, emptyAlternativeError(it.tok)
			}
			groups = append(groups, nil)
			lastOr = it.tok
		} else {
			groups[len(groups)-1] = append(groups[len(groups)-1], it)
		}
	}
	if len(groups[len(groups)-1]) == 0 {
		return nil, emptyAlternativeError(lastOr)
	}
	return groups, nil
}

// extractTokenThings folds '@ID' into Tag anywhere in items, then
// peels a single leading '{code} ?' predicate and a single trailing
// tag; any other Tag or InlineCode left over is a structural error.
// Token bodies never carry directives or trailing code.
func extractTokenThings(items []item, name *ast.Identifier) ([]item, *ast.Tag, *ast.Predicate, error) {
	var out []item
	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.isTok(lexer.AT) {
			if i+1 == len(items) {
				return nil, nil, nil, danglingMarkerError(it.tok)
			}
			id, ok := items[i+1].isIdentifier()
			if !ok {
				return nil, nil, nil, danglingMarkerError(it.tok)
			}
			out = append(out, tagItem(&ast.Tag{Name: id, At: it.tok}))
			i++
		} else {
			out = append(out, it)
		}
	}

	var predicate *ast.Predicate
	if len(out) > 1 && out[0].isInlineCode() && out[1].isTok(lexer.QMARK) {
		predicate = &ast.Predicate{Code: out[0].code, Qmark: out[1].tok}
		out = out[2:]
	}

	var tag *ast.Tag
	end := len(out)
trailer:
	for end > 0 {
		it := out[end-1]
		switch {
		case it.isTag():
			if tag != nil {
				return nil, nil, nil, multipleTagsError(tag.At)
			}
			tag = it.tag
			end--
		case it.isInlineCode():
			return nil, nil, nil, illegalAtomError(it.code.Token, "token definitions cannot contain code snippets")
		default:
			break trailer
		}
	}
	out = out[:end]

	if len(out) == 0 {
		switch {
		case tag != nil:
			return nil, nil, nil, emptyDefinitionError(tag.At, "token")
		case predicate != nil:
			return nil, nil, nil, emptyDefinitionError(predicate.Qmark, "token")
		default:
			return nil, nil, nil, emptyDefinitionError(name.Token, "token")
		}
	}

	for _, it := range out {
		switch {
		case it.isTag():
			return nil, nil, nil, misplacedTrailerError(it.tag.At, "tags")
		case it.isInlineCode():
			return nil, nil, nil, illegalAtomError(it.code.Token, "token definitions cannot contain code snippets")
		}
	}

	return out, tag, predicate, nil
}

func groupToExpr(group []item) (ast.Expr, error) {
	for _, it := range group {
		switch {
		case it.isExpr():
		case it.isTag():
			return nil, misplacedTrailerError(it.tag.At, "tags")
		case it.isDirective():
			return nil, misplacedTrailerError(it.dir.Bam, "directives")
		case it.isInlineCode():
			return nil, misplacedTrailerError(it.code.Token, "code snippets")
		case it.isPredicate():
			return nil, misplacedPredicateError(it.pred.Qmark)
		default:
			return nil, unexpectedTokenError(it.tok)
		}
	}
	if len(group) == 1 {
		return group[0].expr, nil
	}
	values := make([]ast.Expr, len(group))
	for i, it := range group {
		values[i] = it.expr
	}
	return &ast.Concatenation{Values: values}, nil
}

// recursivelyParse handles a flat mixed list that is not a top-level
// rule body: inside parentheses, and for token/fragment bodies.
func recursivelyParse(items []item) (ast.Expr, error) {
	items, err := handleParentheses(items)
	if err != nil {
		return nil, err
	}
	items, err = handleOps(items)
	if err != nil {
		return nil, err
	}
	groups, err := splitOnOr(items)
	if err != nil {
		return nil, err
	}
	if len(groups) == 1 {
		return groupToExpr(groups[0])
	}
	values := make([]ast.Expr, len(groups))
	for i, g := range groups {
		value, err := groupToExpr(g)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return &ast.Union{Values: values}, nil
}

// makeAlternatives splits a rule body on '|' and decomposes each group
// into an Alternative, enforcing tag uniformity across the rule.
func makeAlternatives(items []item) ([]*ast.Alternative, error) {
	groups, err := splitOnOr(items)
	if err != nil {
		return nil, err
	}

	alts := make([]*ast.Alternative, len(groups))
	for i, g := range groups {
		alt, err := splitGroup(g)
		if err != nil {
			return nil, err
		}
		alts[i] = alt
	}

	hasTag := alts[0].Tag != nil
	for _, alt := range alts[1:] {
		if (alt.Tag != nil) != hasTag {
			pos := alts[0].Tag
			if pos == nil {
				pos = alt.Tag
			}
			return nil, tagUniformityError(pos.At)
		}
	}
	return alts, nil
}

// splitGroup decomposes one '|'-separated group of a rule alternative
// into {value, tag?, directives[], code?, predicate?}, peeling
// trailing tag/directive/code items and a single leading predicate.
func splitGroup(group []item) (*ast.Alternative, error) {
	var tag *ast.Tag
	var directives []*ast.Directive
	var code *ast.InlineCode

	end := len(group)
trailer:
	for end > 0 {
		it := group[end-1]
		switch {
		case it.isTag():
			if tag != nil {
				return nil, multipleTagsError(tag.At)
			}
			tag = it.tag
			end--
		case it.isDirective():
			directives = append(directives, it.dir)
			end--
		case it.isInlineCode():
			if code != nil {
				return nil, multipleCodeError(code.Token)
			}
			code = it.code
			end--
		default:
			break trailer
		}
	}
	group = group[:end]

	var predicate *ast.Predicate
	if len(group) > 0 && group[0].isPredicate() {
		predicate = group[0].pred
		group = group[1:]
	}

	if len(group) == 0 {
		switch {
		case tag != nil:
			return nil, emptyAlternativeError(tag.At)
		case code != nil:
			return nil, emptyAlternativeError(code.Token)
		case predicate != nil:
			return nil, emptyAlternativeError(predicate.Qmark)
		default:
			return nil, emptyAlternativeError(directives[0].Bam)
		}
	}

	value, err := groupToExpr(group)
	if err != nil {
		return nil, err
	}
	return &ast.Alternative{
		Value:      value,
		Tag:        tag,
		Directives: directives,
		Code:       code,
		Predicate:  predicate,
	}, nil
}
