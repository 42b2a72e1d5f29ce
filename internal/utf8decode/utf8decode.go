// Package utf8decode is a stateless byte-stream-to-code-point decoder.
//
// It implements Bjoern Hoehrmann's DFA-based UTF-8 decoder
// (http://bjoern.hoehrmann.de/utf-8/decoder/dfa/): malformed sequences and
// truncated sequences at the end of the buffer both yield the Unicode
// replacement character U+FFFD with a byte increment of 1, matching the
// scanner's recovery contract.
package utf8decode

const (
	accept = 0
	reject = 12

	// ReplacementChar is substituted for any malformed byte sequence.
	ReplacementChar rune = 0xFFFD
)

// utf8d is Hoehrmann's combined character-class and state-transition
// table: the first 256 bytes map a byte value to one of 12 classes, the
// remaining entries give the next DFA state for (state, class).
var utf8d = [400]byte{
	// byte -> character class
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	8, 8, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	10, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 4, 3, 3,
	11, 6, 6, 6, 5, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,

	// state transitions
	0, 12, 24, 36, 60, 96, 84, 12, 12, 12, 48, 72,
	12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
	12, 0, 12, 12, 12, 12, 12, 0, 12, 0, 12, 12,
	12, 24, 12, 12, 12, 12, 12, 24, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12,
	12, 24, 12, 12, 12, 12, 12, 12, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// Decode inspects up to 4 bytes and returns the decoded code point and the
// number of bytes it occupies. On malformed or truncated input it returns
// (ReplacementChar, 1).
func Decode(b []byte) (r rune, size int) {
	if len(b) == 0 {
		return ReplacementChar, 1
	}

	state := byte(accept)
	var cp rune
	for i := 0; i < len(b) && i < 4; i++ {
		class := utf8d[b[i]]
		if state == accept {
			cp = rune(0xFF>>class) & rune(b[i])
		} else {
			cp = (rune(b[i]) & 0x3F) | (cp << 6)
		}
		state = utf8d[256+int(state)+int(class)]

		switch state {
		case accept:
			return cp, i + 1
		case reject:
			return ReplacementChar, 1
		}
	}
	// Ran out of bytes mid-sequence: truncated multi-byte sequence at
	// end of buffer.
	return ReplacementChar, 1
}
