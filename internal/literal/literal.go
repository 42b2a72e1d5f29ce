// Package literal converts token byte ranges into semantic values:
// folded integers, parsed reals, decoded strings, and identifier views.
package literal

import (
	"fmt"
	"strconv"

	"github.com/opal-lang/opal/internal/arena"
)

// Integer folds the digits of a token's lexeme (already stripped of any
// 0b/0x prefix by the caller) left-to-right under base, skipping '_'.
// Overflow wraps silently in 64 bits, per spec §4.6/§9.
func Integer(digits []byte, base uint64) uint64 {
	var v uint64
	for _, b := range digits {
		if b == '_' {
			continue
		}
		v = v*base + uint64(digitValue(b))
	}
	return v
}

func digitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return 0
}

// Real parses a decimal real-number lexeme using the standard library's
// float parser. Scientific and hex-float notation are not implemented —
// a known hole carried over from the original implementation (spec §4.6).
func Real(lexeme []byte) (float64, error) {
	clean := make([]byte, 0, len(lexeme))
	for _, b := range lexeme {
		if b != '_' {
			clean = append(clean, b)
		}
	}
	f, err := strconv.ParseFloat(string(clean), 64)
	if err != nil {
		return 0, fmt.Errorf("literal: invalid real number %q: %w", lexeme, err)
	}
	return f, nil
}

// escapeByte maps a recognized escape letter to its byte value; ok is
// false for any other letter, in which case the caller emits X verbatim
// (spec §4.6: "all other \X collapse to X verbatim").
func escapeByte(c byte) (byte, bool) {
	switch c {
	case 'b':
		return 0x07, true
	case 'f':
		return 0x0C, true
	case 'n':
		return 0x0A, true
	case 'r':
		return 0x0D, true
	case 't':
		return 0x09, true
	case 'v':
		return 0x0B, true
	}
	return 0, false
}

// String strips the open/close quotes from a "..." lexeme, processes
// escapes byte-by-byte, stores the decoded bytes in arena a, and returns
// the resulting view. An empty string literal is a parse failure.
func String(a *arena.Buffer, lexeme []byte) ([]byte, error) {
	if len(lexeme) < 2 || lexeme[0] != '"' || lexeme[len(lexeme)-1] != '"' {
		return nil, fmt.Errorf("literal: malformed string lexeme %q", lexeme)
	}
	body := lexeme[1 : len(lexeme)-1]
	if len(body) == 0 {
		return nil, fmt.Errorf("literal: empty string literal is not permitted")
	}

	decoded := make([]byte, 0, len(body))
	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' {
			decoded = append(decoded, c)
			i++
			continue
		}
		i++ // consume backslash
		if i >= len(body) {
			break
		}
		if b, ok := escapeByte(body[i]); ok {
			decoded = append(decoded, b)
			i++
			continue
		}
		if body[i] >= '0' && body[i] <= '9' {
			start := i
			for i < len(body) && body[i] >= '0' && body[i] <= '9' {
				i++
			}
			n, err := strconv.Atoi(string(body[start:i]))
			if err != nil || n > 255 {
				return nil, fmt.Errorf("literal: invalid decimal escape \\%s", body[start:i])
			}
			decoded = append(decoded, byte(n))
			continue
		}
		// Unrecognized \X collapses to X verbatim.
		decoded = append(decoded, body[i])
		i++
	}

	dst := a.Push(len(decoded), 1)
	copy(dst, decoded)
	return dst, nil
}

// Identifier returns a zero-copy view (no allocation) into the source
// bytes spanning the NAME token's range.
func Identifier(src []byte, beg, end int) []byte {
	return src[beg:end]
}
