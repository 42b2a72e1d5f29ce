package scanner

import (
	"testing"

	"github.com/opal-lang/opal/internal/source"
)

func TestAdvanceTracksRowColumn(t *testing.T) {
	src := source.New("test", []byte("ab\ncd"))
	c := New(src)

	want := []struct {
		char   rune
		row    int
		column int
	}{
		{'a', 0, 1},
		{'b', 0, 2},
		{'\n', 0, 3},
		{'c', 1, 1},
		{'d', 1, 2},
		{EndOfText, 1, 3},
	}

	for i, w := range want {
		if c.Char() != w.char || c.Loc().Row != w.row || c.Loc().Column != w.column {
			t.Fatalf("step %d: got (%q, row=%d, col=%d), want (%q, row=%d, col=%d)",
				i, c.Char(), c.Loc().Row, c.Loc().Column, w.char, w.row, w.column)
		}
		c.Advance()
	}
}

func TestAdvanceOnUnicode(t *testing.T) {
	src := source.New("test", []byte("héllo"))
	c := New(src)
	if c.Char() != 'h' {
		t.Fatalf("Char() = %q, want 'h'", c.Char())
	}
	c.Advance()
	if c.Char() != 'é' {
		t.Fatalf("Char() = %q, want 'é'", c.Char())
	}
	if c.Width() != 2 {
		t.Fatalf("Width() = %d, want 2 for 'é'", c.Width())
	}
}

func TestPeekDoesNotMutate(t *testing.T) {
	src := source.New("test", []byte("xy"))
	c := New(src)
	if got := c.Peek(1); got != 'y' {
		t.Fatalf("Peek(1) = %q, want 'y'", got)
	}
	if c.Char() != 'x' {
		t.Fatalf("Char() after Peek = %q, want 'x' (Peek must not mutate)", c.Char())
	}
}

func TestEndOfTextSentinel(t *testing.T) {
	src := source.New("test", []byte(""))
	c := New(src)
	if c.Char() != EndOfText || c.Width() != 0 {
		t.Fatalf("empty source: Char()=%q Width()=%d, want (U+0003, 0)", c.Char(), c.Width())
	}
}
