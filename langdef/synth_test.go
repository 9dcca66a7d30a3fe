package langdef

import (
	"strings"
	"testing"

	"github.com/hadrian-reppas/zparse"
	"github.com/hadrian-reppas/zparse/grammar"
)

func mustParse(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	g, err := ParseString("t", text)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return g
}

func checkSynthCode(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code %d, got nil", want)
	}
	zerr, ok := err.(*zparse.Error)
	if !ok {
		t.Fatalf("expected *zparse.Error, got %T (%v)", err, err)
	}
	if zerr.Code != want {
		t.Fatalf("expected code %d, got %d (%v)", want, zerr.Code, zerr)
	}
}

func TestSynthesizeImplicitTokensFirst(t *testing.T) {
	g := mustParse(t, "greet: 'hi' WS\nWS: ' '+\n")
	lex, err := Synthesize(g, true)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(lex.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lex.Entries))
	}
	if lex.Entries[0].Name != "_68_69" {
		t.Fatalf("expected implicit token first, got %q", lex.Entries[0].Name)
	}
	if lex.Entries[1].Name != "WS" {
		t.Fatalf("expected WS second, got %q", lex.Entries[1].Name)
	}
}

func TestSynthesizeParenthesisImplicitTokens(t *testing.T) {
	g := mustParse(t, "expr: '(' expr ')' | NUMBER\nNUMBER: '0'-'9'+\n")
	lex, err := Synthesize(g, false)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(lex.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lex.Entries))
	}
	if lex.Entries[0].Name != "_28" || lex.Entries[1].Name != "_29" {
		t.Fatalf("unexpected implicit names: %q, %q", lex.Entries[0].Name, lex.Entries[1].Name)
	}
	if lex.Entries[0].RegexSource != `\(` || lex.Entries[1].RegexSource != `\)` {
		t.Fatalf("unexpected patterns: %q, %q", lex.Entries[0].RegexSource, lex.Entries[1].RegexSource)
	}
	if !lex.Entries[0].Regex.MatchString("(") || !lex.Entries[1].Regex.MatchString(")") {
		t.Fatal("expected compiled patterns to match their literals")
	}
}

func TestSynthesizeFragmentOrdering(t *testing.T) {
	g := mustParse(t, "_DIGIT: '0'-'9'\n_NUM: _DIGIT+\nNUM: _NUM\n")
	lex, err := Synthesize(g, false)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(lex.Entries) != 1 || lex.Entries[0].Name != "NUM" {
		t.Fatalf("unexpected entries: %+v", lex.Entries)
	}
	if !strings.Contains(lex.Entries[0].RegexSource, "0-9") {
		t.Fatalf("expected fragment expansion in regex, got %q", lex.Entries[0].RegexSource)
	}
	if lex.Entries[0].Regex == nil || !lex.Entries[0].Regex.MatchString("5") {
		t.Fatalf("expected compiled regex to match a digit, got %v", lex.Entries[0].Regex)
	}
}

func TestSynthesizeFragmentCycle(t *testing.T) {
	g := mustParse(t, "_A: _B\n_B: _A\nTOK: _A\n")
	_, err := Synthesize(g, false)
	checkSynthCode(t, err, FragmentCycleError)
}

func TestSynthesizeDuplicateToken(t *testing.T) {
	g := mustParse(t, "A: 'x'\nA: 'y'\n")
	_, err := Synthesize(g, false)
	checkSynthCode(t, err, DuplicateTokenError)
}

func TestSynthesizeReservedEOF(t *testing.T) {
	g := mustParse(t, "EOF: 'x'\n")
	_, err := Synthesize(g, false)
	checkSynthCode(t, err, ReservedNameError)
}

func TestSynthesizeReservedTagName(t *testing.T) {
	g := mustParse(t, "rule: 'x' @Tokenize\n")
	_, err := Synthesize(g, false)
	checkSynthCode(t, err, ReservedNameError)
}

func TestSynthesizeMultiCharImplicitRejectedByDefault(t *testing.T) {
	g := mustParse(t, "greet: 'hello'\n")
	_, err := Synthesize(g, false)
	checkSynthCode(t, err, MultiCharImplicitError)
}

func TestSynthesizeMultiCharImplicitAllowed(t *testing.T) {
	g := mustParse(t, "greet: 'hello'\n")
	lex, err := Synthesize(g, true)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(lex.Entries) != 1 || lex.Entries[0].Name != "_68_65_6c_6c_6f" {
		t.Fatalf("unexpected entries: %+v", lex.Entries)
	}
}
