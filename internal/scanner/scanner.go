// Package scanner implements the Caret: a positional, one-code-point
// lookahead cursor over a loaded source.
package scanner

import (
	"github.com/opal-lang/opal/internal/source"
	"github.com/opal-lang/opal/internal/utf8decode"
)

// EndOfText is the sentinel code point the Caret reports once position
// reaches the end of the source.
const EndOfText rune = 0x0003

// Caret holds the mutable scanning state: the source it scans, the
// current Location, the currently decoded code point, and the byte
// increment required to advance past it. Invariant: (Char, width) is
// always the decoding of the bytes starting at Loc.Offset; at end of
// input, Char is EndOfText and width is 0.
type Caret struct {
	src   *source.Source
	loc   source.Position
	char  rune
	width int
}

// New constructs a Caret over src and primes it by calling Advance once,
// per the scanner's construction invariant.
func New(src *source.Source) *Caret {
	c := &Caret{src: src}
	c.Advance()
	return c
}

// Source returns the Caret's underlying source.
func (c *Caret) Source() *source.Source { return c.src }

// Loc returns the current position.
func (c *Caret) Loc() source.Position { return c.loc }

// Char returns the currently decoded code point.
func (c *Caret) Char() rune { return c.char }

// Width returns the byte width of Char.
func (c *Caret) Width() int { return c.width }

// AtEnd reports whether the caret has reached end of text.
func (c *Caret) AtEnd() bool { return c.char == EndOfText }

// Advance pushes the position forward by the current increment, decodes
// the next code point, and updates row/column: row increments if the
// just-left character was '\n', column resets to 0 then increments to 1
// on a newline, otherwise column increments by one.
func (c *Caret) Advance() {
	justLeft := c.char
	c.loc.Offset += c.width

	if c.loc.Offset >= c.src.Len() {
		c.char = EndOfText
		c.width = 0
	} else {
		r, w := utf8decode.Decode(c.src.Bytes()[c.loc.Offset:])
		c.char = r
		c.width = w
	}

	if justLeft == '\n' {
		c.loc.Row++
		c.loc.Column = 0
	}
	c.loc.Column++
}

// Peek decodes the code point n code points ahead (n >= 1) without
// mutating the caret; Peek(1) is the code point immediately following
// Char. It is O(n) since code points are variable width.
func (c *Caret) Peek(n int) rune {
	if n < 1 {
		n = 1
	}
	off := c.loc.Offset + c.width
	var r rune = EndOfText
	for i := 0; i < n; i++ {
		if off >= c.src.Len() {
			return EndOfText
		}
		var w int
		r, w = utf8decode.Decode(c.src.Bytes()[off:])
		off += w
	}
	return r
}
