package utf8decode

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		wantRune rune
		wantSize int
	}{
		{"ascii", []byte("A"), 'A', 1},
		{"two byte", []byte("é"), 'é', 2},
		{"three byte", []byte("€"), '€', 3},
		{"four byte", []byte("😀"), '😀', 4},
		{"empty", []byte{}, ReplacementChar, 1},
		{"lone continuation byte", []byte{0x80}, ReplacementChar, 1},
		{"truncated two byte", []byte{0xC3}, ReplacementChar, 1},
		{"truncated three byte", []byte{0xE2, 0x82}, ReplacementChar, 1},
		{"overlong encoding", []byte{0xC0, 0x80}, ReplacementChar, 1},
		{"invalid start byte", []byte{0xFF}, ReplacementChar, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, size := Decode(tt.input)
			if r != tt.wantRune || size != tt.wantSize {
				t.Fatalf("Decode(%v) = (%q, %d), want (%q, %d)", tt.input, r, size, tt.wantRune, tt.wantSize)
			}
		})
	}
}

func TestDecodeAdvancesPastBadSequenceByOneByte(t *testing.T) {
	// A malformed sequence followed by an ASCII byte must recover within
	// one byte, never swallowing the following valid byte.
	input := []byte{0xFF, 'x'}
	r, size := Decode(input)
	if r != ReplacementChar || size != 1 {
		t.Fatalf("Decode(%v) = (%q, %d), want (U+FFFD, 1)", input, r, size)
	}
	r, size = Decode(input[size:])
	if r != 'x' || size != 1 {
		t.Fatalf("Decode after recovery = (%q, %d), want ('x', 1)", r, size)
	}
}
