// Package source defines the source text a grammar description is read
// from, and position values tied to it.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source represents a single grammar description file or string.
// Grammars are loaded whole (no incremental/streaming parsing), so a
// Source is immutable once built.
type Source struct {
	name          string
	content       []byte
	lineStarts    []int
	prevLineIndex int
}

// New creates a new Source.
// Name may be any string identifying the source (e.g. a file name),
// may be empty, and does not have to be unique.
// Content should be valid UTF-8, lines separated by "\n".
// Content should not be modified after this call.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	s.lineStarts[0] = 0
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// Content returns the source content.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns the source content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns the 1-based line and column of the rune starting at
// pos. A negative pos is treated as 0; a pos at or beyond the content
// length is treated as the position right after the end of the source.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

func (s *Source) findLineIndex(pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	lineStart := 0
	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	index := 0
	if s.prevLineIndex >= 0 {
		lineStart = s.lineStarts[s.prevLineIndex]
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart = s.lineStarts[index]
		if lineStart == pos {
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex = index
	return index
}

// Pos combines a captured source, a byte offset into it, and the
// line/column that offset corresponds to. Zero value means no
// position information is available.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos returns a Pos. Returns the zero value if s is nil.
func NewPos(s *Source, pos int) Pos {
	if s == nil {
		return Pos{}
	}

	l, c := s.LineCol(pos)
	return Pos{s, pos, l, c}
}

// Source returns the captured source, or nil.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns the captured source name, or "".
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

// Pos returns the captured byte offset, or 0.
func (p Pos) Pos() int {
	return p.pos
}

// Line returns the captured 1-based line number, or 0.
func (p Pos) Line() int {
	return p.line
}

// Col returns the captured 1-based column number, or 0.
func (p Pos) Col() int {
	return p.col
}
