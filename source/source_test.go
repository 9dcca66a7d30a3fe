package source

import (
	"testing"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{8, 4, 3},
			{9, 4, 4},
			{10, 4, 5},
			{11, 4, 6},
			{12, 4, 7},
			{13, 4, 8},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
	}

	for text, results := range samples {
		src := New("", []byte(text))
		for _, res := range results {
			l, c := src.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestNewPos(t *testing.T) {
	src := New("g.zp", []byte("foo\nbar"))
	p := NewPos(src, 5)
	if p.SourceName() != "g.zp" || p.Line() != 2 || p.Col() != 2 || p.Pos() != 5 {
		t.Fatalf("unexpected pos: %+v", p)
	}

	zero := NewPos(nil, 5)
	if zero.Source() != nil || zero.SourceName() != "" || zero.Line() != 0 || zero.Col() != 0 {
		t.Fatalf("expected zero value, got %+v", zero)
	}
}
