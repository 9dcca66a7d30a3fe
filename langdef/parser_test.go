package langdef

import (
	"strconv"
	"testing"

	"github.com/hadrian-reppas/zparse"
	"github.com/hadrian-reppas/zparse/source"
)

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for index, src := range samples {
		errPrefix := "input #" + strconv.Itoa(index)
		_, e := Parse(source.New("string", []byte(src)))

		if code == 0 {
			if e != nil {
				t.Errorf("%s: unexpected error: %s", errPrefix, e.Error())
			}
			continue
		}

		if e == nil {
			t.Errorf("%s: error expected, got success", errPrefix)
			continue
		}

		pe, is := e.(*zparse.Error)
		if !is {
			t.Errorf("%s: *zparse.Error expected, got %q", errPrefix, e.Error())
			continue
		}

		if pe.Code != code {
			t.Errorf("%s: expected error code %d, got %d (%s)", errPrefix, code, pe.Code, pe.Error())
		}
	}
}

func TestUnexpectedToken(t *testing.T) {
	samples := []string{
		"foo 'a'",
		": 'a'",
		"foo: 'a'\nbar 'b'",
	}
	checkErrorCode(t, samples, UnexpectedTokenError)
}

func TestUnexpectedColon(t *testing.T) {
	samples := []string{
		"foo: 'a' : 'b'",
	}
	checkErrorCode(t, samples, UnexpectedColonError)
}

func TestEmptyDefinition(t *testing.T) {
	samples := []string{
		"foo:\nbar: 'b'",
		"FOO:\nbar: 'b'",
		"_FOO:\nbar: 'b'",
	}
	checkErrorCode(t, samples, EmptyDefinitionError)
}

func TestIllegalAtomPerTrack(t *testing.T) {
	samples := []string{
		// rules: no DASH, no DOT
		"foo: 'a'-'b'",
		"foo: .",
		// tokens: no BAM, no EQUALS, no DOT
		"FOO: 'a' !dir",
		"FOO: x = 'a'",
		"FOO: .",
		// fragments: no CODE, no BAM, no AT, no EQUALS, no rule/token refs
		"_FOO: {x}",
		"_FOO: 'a' !dir",
		"_FOO: 'a' @tag",
		"_FOO: _X = 'a'",
	}
	checkErrorCode(t, samples, IllegalAtomError)
}

func TestIllegalCrossKindRef(t *testing.T) {
	samples := []string{
		"foo: _FRAG",
		"FOO: bar",
		"FOO: BAR",
		"_FOO: bar",
		"_FOO: BAR",
	}
	checkErrorCode(t, samples, IllegalRefError)
}

func TestDanglingMarker(t *testing.T) {
	samples := []string{
		"foo: 'a' @",
		"foo: 'a' !",
		"FOO: 'a' @",
	}
	checkErrorCode(t, samples, DanglingMarkerError)
}

func TestBadAlias(t *testing.T) {
	samples := []string{
		"foo: = bar",
		"foo: bar =",
		"foo: 'a' = bar",
	}
	checkErrorCode(t, samples, BadAliasError)
}

func TestBadRange(t *testing.T) {
	samples := []string{
		"_FOO: - 'a'",
		"_FOO: 'a' -",
		"_FOO: _BAR - 'a'",
		"_FOO: 'a' - _BAR",
	}
	checkErrorCode(t, samples, BadRangeError)
}

func TestRangeBoundLength(t *testing.T) {
	samples := []string{
		"_FOO: 'ab' - 'c'",
		"_FOO: 'a' - 'bc'",
	}
	checkErrorCode(t, samples, RangeBoundLengthError)
}

func TestUnmatchedRParen(t *testing.T) {
	samples := []string{
		"foo: 'a')",
	}
	checkErrorCode(t, samples, UnmatchedRParenError)
}

func TestUnclosedParen(t *testing.T) {
	samples := []string{
		"foo: ('a'",
		"foo: ('a' | 'b'",
	}
	checkErrorCode(t, samples, UnclosedParenError)
}

func TestEmptyParens(t *testing.T) {
	samples := []string{
		"foo: ()",
	}
	checkErrorCode(t, samples, EmptyParensError)
}

func TestDanglingOp(t *testing.T) {
	samples := []string{
		"foo: *",
		"foo: +",
		"foo: ?",
		"foo: 'a' | *",
	}
	checkErrorCode(t, samples, DanglingOpError)
}

func TestEmptyAlternative(t *testing.T) {
	samples := []string{
		"foo: 'a' | | 'b'",
		"foo: | 'a'",
		"foo: 'a' |",
	}
	checkErrorCode(t, samples, EmptyAlternativeError)
}

func TestMultipleTags(t *testing.T) {
	samples := []string{
		"foo: 'a' @x @y",
	}
	checkErrorCode(t, samples, MultipleTagsError)
}

func TestMultipleCode(t *testing.T) {
	samples := []string{
		"foo: 'a' {x} {y}",
	}
	checkErrorCode(t, samples, MultipleCodeError)
}

func TestMisplacedTrailer(t *testing.T) {
	samples := []string{
		"foo: @t 'a'",
		"foo: !d 'a'",
		"foo: {x} 'a'",
		"foo: ('a' @t) 'b'",
	}
	checkErrorCode(t, samples, MisplacedTrailerError)
}

func TestMisplacedPredicate(t *testing.T) {
	samples := []string{
		"foo: 'a' {x} ?",
		"foo: ('a' {x} ?) 'b'",
	}
	checkErrorCode(t, samples, MisplacedPredicateError)
}

func TestTagUniformity(t *testing.T) {
	checkErrorCode(t, []string{"x: 'a' @foo | 'b'"}, TagUniformityError)
	checkErrorCode(t, []string{"x: 'a' @foo | 'b' @bar"}, 0)
}

func TestNoError(t *testing.T) {
	samples := []string{
		"foo: 'a'",
		"foo: 'a' | 'b'",
		"foo: ('a' | 'b') 'c'*",
		"foo: 'a'+ 'b'? 'c'*?",
		"foo: x = bar",
		"foo: bar baz",
		"FOO: 'a'",
		"FOO: 'a' | 'b'",
		"FOO: _FRAG",
		"FOO: 'a' @tag",
		"FOO: {x} ? 'a'",
		"_FOO: 'a' - 'z'",
		"_FOO: _BAR*",
		"_FOO: .",
		"BAR",
		"foo: 'a' !dir",
		"foo: {code} ? 'a'",
		"foo: 'a' {code}",
		"foo: 'a' @tag !dir {code}",
	}
	checkErrorCode(t, samples, 0)
}

func TestRecursivelyParseNesting(t *testing.T) {
	g, err := ParseString("t", "foo: ('a' 'b' | 'c')* 'd'\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.RuleDefinitions) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(g.RuleDefinitions))
	}
	alts := g.RuleDefinitions[0].Alternatives
	if len(alts) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(alts))
	}
	re, err := alts[0].Value.ToRegex(nil)
	if err != nil {
		t.Fatalf("ToRegex: %v", err)
	}
	if re != "(((((ab))|(c)))*d)" {
		t.Fatalf("unexpected regex: %q", re)
	}
}

func TestTokenDeclaration(t *testing.T) {
	g, err := ParseString("t", "BAR\nfoo: 'a'\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.TokenDeclarations) != 1 || g.TokenDeclarations[0].Name.Name != "BAR" {
		t.Fatalf("expected BAR declaration, got %+v", g.TokenDeclarations)
	}
}

func TestAliasUsableInsideRuleBody(t *testing.T) {
	_, err := ParseString("t", "foo: ('a' | x = bar) 'b'\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
