package ast

import (
	"testing"

	"github.com/hadrian-reppas/zparse/lexer"
	"github.com/hadrian-reppas/zparse/source"
)

func tok(kind lexer.Kind, text string) *lexer.Token {
	return lexer.NewToken(kind, text, source.NewPos(source.New("t", []byte(text)), 0))
}

func str(text string) *StringLiteral {
	return NewStringLiteral(tok(lexer.STRING, text))
}

func id(name string) *Identifier {
	return NewIdentifier(tok(lexer.ID, name))
}

func TestIdentifierKind(t *testing.T) {
	cases := map[string][3]bool{
		"expr":   {true, false, false},
		"FOO":    {false, true, false},
		"_FOO":   {false, false, true},
		"fooBar": {true, false, false},
	}
	for name, want := range cases {
		i := id(name)
		got := [3]bool{i.IsRule(), i.IsToken(), i.IsFragment()}
		if got != want {
			t.Errorf("%q: expected %v, got %v", name, want, got)
		}
	}
}

func TestStringLiteralDecode(t *testing.T) {
	samples := map[string]string{
		`'a'`:          "a",
		`"a"`:          "a",
		`'\n'`:         "\n",
		`'\t'`:         "\t",
		`'\''`:         "'",
		`'a\*b'`:       "a*b",
		`'\\'`:         "\\",
		`'\u0041'`:     "A",
		`'\U0010FFFF'`: "\U0010FFFF",
		`'\x20'`:       " ",
	}
	for text, want := range samples {
		got := str(text).Value()
		if got != want {
			t.Errorf("%q: expected %q, got %q", text, want, got)
		}
	}
}

func TestStringLiteralToRegex(t *testing.T) {
	s := str(`'a.b*c'`)
	re, err := s.ToRegex(nil)
	if err != nil {
		t.Fatal(err)
	}
	if re != `a\.b\*c` {
		t.Fatalf("unexpected regex: %q", re)
	}
}

func TestRangeSwapsBounds(t *testing.T) {
	r := &Range{Low: str("'z'"), High: str("'a'")}
	re, err := r.ToRegex(nil)
	if err != nil {
		t.Fatal(err)
	}
	if re != "[a-z]" {
		t.Fatalf("unexpected regex: %q", re)
	}
}

func TestRangeEscapesBracketAndCaret(t *testing.T) {
	r := &Range{Low: str("'^'"), High: str("']'")}
	re, err := r.ToRegex(nil)
	if err != nil {
		t.Fatal(err)
	}
	if re != `[\^-\]]` {
		t.Fatalf("unexpected regex: %q", re)
	}
}

func TestUnionAndConcatenation(t *testing.T) {
	u := &Union{Values: []Expr{str("'a'"), str("'b'")}}
	re, err := u.ToRegex(nil)
	if err != nil {
		t.Fatal(err)
	}
	if re != "((a)|(b))" {
		t.Fatalf("unexpected regex: %q", re)
	}

	c := &Concatenation{Values: []Expr{str("'a'"), str("'b'")}}
	re, err = c.ToRegex(nil)
	if err != nil {
		t.Fatal(err)
	}
	if re != "(ab)" {
		t.Fatalf("unexpected regex: %q", re)
	}
}

func TestQuantifiers(t *testing.T) {
	base := str("'a'")
	cases := []struct {
		expr Expr
		want string
	}{
		{&Optional{Value: base}, "(a)?"},
		{&NongreedyOptional{Value: base}, "(a)??"},
		{&Star{Value: base}, "(a)*"},
		{&NongreedyStar{Value: base}, "(a)*?"},
		{&Plus{Value: base}, "(a)+"},
		{&NongreedyPlus{Value: base}, "(a)+?"},
	}
	for _, c := range cases {
		re, err := c.expr.ToRegex(nil)
		if err != nil {
			t.Fatal(err)
		}
		if re != c.want {
			t.Errorf("expected %q, got %q", c.want, re)
		}
	}
}

func TestIdentifierUndefinedFragment(t *testing.T) {
	i := id("_FRAG")
	_, err := i.ToRegex(map[string]string{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestIdentifiersAndLiterals(t *testing.T) {
	u := &Union{Values: []Expr{id("expr"), str("'x'")}}
	ids := u.Identifiers()
	if _, ok := ids["expr"]; !ok || len(ids) != 1 {
		t.Fatalf("unexpected identifiers: %v", ids)
	}
	lits := u.Literals()
	if _, ok := lits["x"]; !ok || len(lits) != 1 {
		t.Fatalf("unexpected literals: %v", lits)
	}
}
