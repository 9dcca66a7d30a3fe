package grammar

import (
	"github.com/hadrian-reppas/zparse/lexer"
	"github.com/hadrian-reppas/zparse/source"
)

// Token is one token yielded by a synthesized lexer: the name of the
// TokenEntry whose pattern matched, the exact text consumed, and the
// position of its first byte.
type Token struct {
	Name string
	Text string
	Pos  source.Pos
}

// Host supplies the evaluation behavior that a LexerDescription's tag
// and predicate hooks depend on. Tokenize never evaluates a hook's
// source snippet itself; it only decides which hook applies at a given
// position and defers to Host to run it.
type Host interface {
	// EvalPredicate runs the boolean host expression named by a token
	// entry's Predicate hook against the candidate match text. A false
	// result rejects the candidate at this entry for this position;
	// Tokenize then falls back to the next-longest or next-declared
	// candidate as though the entry's pattern had not matched.
	EvalPredicate(code, text string) (bool, error)

	// EvalTag runs the hook named by a token entry's TagHook against
	// the freshly produced token. It may return nil (drop the token),
	// one token, or several, each of which Tokenize yields in order in
	// place of the original token.
	EvalTag(tagName string, tok Token) ([]Token, error)
}

// Tokenize scans src against desc, implementing the longest-match,
// first-declared-wins discipline of the synthesized lexer: at every
// position, every entry's pattern is tried in declaration order, the
// longest match wins, and ties are broken by whichever entry was
// declared first. A winning entry carrying a predicate hook must pass
// it (via host) to be accepted; if it does not, Tokenize considers the
// next-best candidate at that position exactly as if the rejected
// entry's pattern had not matched at all. A winning entry carrying a
// tag hook has its token rewritten into whatever the hook yields (via
// host); host may be nil only if desc has no entries with hooks.
//
// Tokenize returns *lexer.TokenError if no entry matches (after
// predicate rejection) at some position before the end of src.
func Tokenize(desc *LexerDescription, src *source.Source, host Host) ([]Token, error) {
	content := src.Content()
	pos := 0
	var out []Token

	for pos < len(content) {
		tok, advance, err := desc.matchLongest(src, content, pos, host)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, lexer.NewTokenError(source.NewPos(src, pos), "no token matches remaining input")
		}

		pos += advance
		entry := desc.entryNamed(tok.Name)
		if entry != nil && entry.TagHook != "" {
			yielded, err := host.EvalTag(entry.TagHook, *tok)
			if err != nil {
				return nil, err
			}
			out = append(out, yielded...)
		} else {
			out = append(out, *tok)
		}
	}

	out = append(out, Token{Name: eofTokenName, Pos: source.NewPos(src, len(content))})
	return out, nil
}

// eofTokenName is the terminal token synthesized lexers yield once
// input is exhausted. It is also the one name reserved from every
// grammar's own token namespace (see langdef.Synthesize).
const eofTokenName = "EOF"

// matchLongest tries every entry's pattern anchored at pos, in
// declaration order, and returns the token and byte length of the
// longest accepted match. Candidates are considered from longest to
// shortest match length so that a predicate rejection correctly falls
// through to the next-best candidate rather than just the next entry.
func (d *LexerDescription) matchLongest(src *source.Source, content []byte, pos int, host Host) (*Token, int, error) {
	type candidate struct {
		entryIndex int
		length     int
	}

	var candidates []candidate
	for i, entry := range d.Entries {
		loc := entry.Regex.FindIndex(content[pos:])
		if loc == nil || loc[0] != 0 || loc[1] == 0 {
			continue
		}
		candidates = append(candidates, candidate{entryIndex: i, length: loc[1]})
	}

	// Stable-sort by length descending; ties keep declaration order
	// because the scan above already visited entries in that order.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].length > candidates[j-1].length; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}

	for _, c := range candidates {
		entry := d.Entries[c.entryIndex]
		text := string(content[pos : pos+c.length])
		if entry.Predicate != "" {
			ok, err := host.EvalPredicate(entry.Predicate, text)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				continue
			}
		}

		return &Token{Name: entry.Name, Text: text, Pos: source.NewPos(src, pos)}, c.length, nil
	}

	return nil, 0, nil
}

func (d *LexerDescription) entryNamed(name string) *TokenEntry {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			return &d.Entries[i]
		}
	}
	return nil
}
