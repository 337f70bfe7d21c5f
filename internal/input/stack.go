// Package input implements the nested input-source stack described by the
// Forth system's data model: a small LIFO of descriptors (keyboard plus
// included files) each tracking its own read buffer, byte cursor, and line
// counter, so that files may INCLUDE files.
package input

import (
	"errors"
	"fmt"
	"io"

	"github.com/flashforth/forth/internal/runeio"
)

// MaxDepth is the default input stack capacity (spec: "typically 4").
const MaxDepth = 4

// ErrOverflow is raised when pushing a source would exceed MaxDepth.
var ErrOverflow = errors.New("input stack overflow")

// ErrEmpty is returned when Pop is attempted with no sources at all pushed
// (ReadRune reports io.EOF in that case instead).
var ErrEmpty = errors.New("no input source")

// Descriptor names one entry of the input stack for diagnostics: the
// source's interned name and the line last read from it.
type Descriptor struct {
	Name string
	Line int
}

func (d Descriptor) String() string { return fmt.Sprintf("%v:%v", d.Name, d.Line) }

type source struct {
	rr     runeio.Reader
	closer io.Closer
	name   string
	line   int
	eol    bool // one-shot end-of-line flag, consumed by the '\' word
}

// Stack is a bounded stack of input sources. The bottom-most (index 0)
// source is conventionally the keyboard; ReadRune never auto-advances past
// an exhausted source, so callers observe io.EOF and may Pop explicitly --
// the VM's tokenizer (readRune) does so for every source above the bottom
// one.
type Stack struct {
	depth   uint
	sources []*source
}

// NewStack returns an empty input stack with capacity max (0 means
// MaxDepth).
func NewStack(max uint) *Stack {
	if max == 0 {
		max = MaxDepth
	}
	return &Stack{depth: max}
}

// Len reports how many sources are currently pushed.
func (s *Stack) Len() int { return len(s.sources) }

// Push adds r as the new top input source, with the given name used for
// diagnostics and OFF_PATH-relative resolution by callers.
func (s *Stack) Push(r io.Reader, name string) error {
	if uint(len(s.sources)) >= s.depth {
		return ErrOverflow
	}
	src := &source{rr: runeio.NewReader(r), name: name, line: 1}
	if cl, ok := r.(io.Closer); ok {
		src.closer = cl
	}
	s.sources = append(s.sources, src)
	return nil
}

// Pop discards the top input source, closing it if it is an io.Closer.
func (s *Stack) Pop() error {
	if len(s.sources) == 0 {
		return ErrEmpty
	}
	i := len(s.sources) - 1
	top := s.sources[i]
	s.sources = s.sources[:i]
	if top.closer != nil {
		return top.closer.Close()
	}
	return nil
}

// Current describes the top input source.
func (s *Stack) Current() Descriptor {
	if len(s.sources) == 0 {
		return Descriptor{}
	}
	top := s.sources[len(s.sources)-1]
	return Descriptor{Name: top.name, Line: top.line}
}

// AtBottom reports whether the top source is source 0, the keyboard.
func (s *Stack) AtBottom() bool { return len(s.sources) == 1 }

// ConsumeEOL reports and clears the one-shot end-of-line flag set by the
// last '\n' read from the current source; used to implement the '\' line
// comment word.
func (s *Stack) ConsumeEOL() bool {
	if len(s.sources) == 0 {
		return false
	}
	top := s.sources[len(s.sources)-1]
	v := top.eol
	top.eol = false
	return v
}

// ReadRune reads one rune from the current (topmost) source. It returns
// io.EOF both when there are no sources at all, and when the topmost
// source's underlying reader is exhausted -- callers distinguish the two
// via Len.
func (s *Stack) ReadRune() (rune, error) {
	if len(s.sources) == 0 {
		return 0, io.EOF
	}
	top := s.sources[len(s.sources)-1]
	r, _, err := top.rr.ReadRune()
	if r == '\n' {
		top.line++
		top.eol = true
	}
	return r, err
}
