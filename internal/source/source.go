// Package source owns the raw bytes of a loaded compiler input file.
package source

import (
	"fmt"
	"os"
)

// MaxPathLen is the longest path the loader accepts, enforced before the
// file is ever opened.
const MaxPathLen = 255

// Source is one loaded file: its path, its owned byte sequence, and the
// sequence's length. It is immutable after Load returns and is shared by
// read-only reference with the scanner and the diagnostics sink.
type Source struct {
	path string
	data []byte
}

// Load reads path in its entirety and returns an owned Source.
func Load(path string) (*Source, error) {
	if len(path) > MaxPathLen {
		return nil, fmt.Errorf("source: path %q exceeds maximum length of %d bytes", path, MaxPathLen)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return &Source{path: path, data: data}, nil
}

// New wraps an in-memory byte slice as a Source, for the REPL and tests
// where there is no file on disk.
func New(name string, data []byte) *Source {
	return &Source{path: name, data: data}
}

// Path returns the path given to Load (or the name given to New).
func (s *Source) Path() string { return s.path }

// Len returns the byte length of the loaded source.
func (s *Source) Len() int { return len(s.data) }

// Bytes exposes the full underlying buffer for read-only indexing. Callers
// must not mutate the returned slice.
func (s *Source) Bytes() []byte { return s.data }

// Slice returns data[beg:end], the raw bytes of a lexeme or node span.
func (s *Source) Slice(beg, end int) []byte { return s.data[beg:end] }

// Position is a (byte offset, row, column) triple. Row starts at 0 and is
// incremented immediately after a newline is consumed; column resets to 0
// on newline and increments on every consumed code point.
type Position struct {
	Offset int
	Row    int
	Column int
}

// Range is a half-open byte interval [Beg, End) plus the row/column of its
// beginning. Attached to every token and every AST node.
type Range struct {
	Beg, End int
	Row      int
	Column   int
}

// Len reports the byte length of the range.
func (r Range) Len() int { return r.End - r.Beg }

// Contains reports whether r fully contains o (used to check the AST
// invariant that a parent's range contains every child's range).
func (r Range) Contains(o Range) bool {
	return r.Beg <= o.Beg && o.End <= r.End
}

// Cover returns the smallest range spanning both r and o, taking the
// earlier range's row/column as the result's starting position.
func Cover(r, o Range) Range {
	out := r
	if o.Beg < out.Beg {
		out.Beg = o.Beg
		out.Row, out.Column = o.Row, o.Column
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}
