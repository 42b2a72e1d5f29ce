package lexer

import (
	"testing"

	"github.com/opal-lang/opal/internal/source"
	"github.com/opal-lang/opal/internal/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	tz := New(source.New("test", []byte(input)))
	var toks []token.Token
	for {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("tokenize(%q): unexpected error: %v", input, err)
		}
		toks = append(toks, tok)
		if tok.Type == token.EOT {
			return toks
		}
	}
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func assertTypes(t *testing.T, input string, want ...token.Type) {
	t.Helper()
	want = append(want, token.EOT)
	got := types(tokenize(t, input))
	if len(got) != len(want) {
		t.Fatalf("tokenize(%q) = %v, want %v", input, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("tokenize(%q)[%d] = %v, want %v (full: %v)", input, i, got[i], want[i], got)
		}
	}
}

func TestPunctuationSingletons(t *testing.T) {
	assertTypes(t, "!#$()*,;?@[]`{}~",
		token.BANG, token.HASH, token.DOLLAR, token.LPAREN, token.RPAREN,
		token.STAR, token.COMMA, token.SEMICOLON, token.QUESTION, token.AT,
		token.LBRACKET, token.RBRACKET, token.BACKTICK, token.LBRACE, token.RBRACE, token.TILDE)
}

func TestCompoundOperators(t *testing.T) {
	cases := []struct {
		in string
		tt token.Type
	}{
		{"!=", token.BANG_EQUALS},
		{"%=", token.PERCENT_EQUALS},
		{"&&", token.AMP_AMP},
		{"&=", token.AMP_EQUALS},
		{"*=", token.STAR_EQUALS},
		{"+=", token.PLUS_EQUALS},
		{"-=", token.MINUS_EQUALS},
		{"->", token.ARROW},
		{"/=", token.SLASH_EQUALS},
		{"<<", token.LSHIFT},
		{"<<=", token.LSHIFT_EQUALS},
		{"<=", token.LT_EQUALS},
		{"==", token.EQUALS_EQUALS},
		{">=", token.GT_EQUALS},
		{">>", token.RSHIFT},
		{">>=", token.RSHIFT_EQUALS},
		{"^=", token.CARET_EQUALS},
		{"||", token.PIPE_PIPE},
		{"|=", token.PIPE_EQUALS},
		{"..", token.DOT_DOT},
	}
	for _, c := range cases {
		assertTypes(t, c.in, c.tt)
	}
}

func TestIdentifiers(t *testing.T) {
	assertTypes(t, "_foo bar-baz Q", token.NAME, token.NAME, token.NAME)
}

func TestIdentifierTrailingHyphenIsLexicalError(t *testing.T) {
	tz := New(source.New("test", []byte("foo-")))
	_, err := tz.Next()
	if err == nil {
		t.Fatal("expected lexical error for identifier ending in '-'")
	}
}

func TestNumberBases(t *testing.T) {
	assertTypes(t, "0b1010 0xFF 42 3.14", token.INTEGER_BIN, token.INTEGER_HEX, token.INTEGER_DEC, token.REAL)
}

func TestNumberUnderscoreSeparators(t *testing.T) {
	toks := tokenize(t, "1_000_000")
	if toks[0].Type != token.INTEGER_DEC {
		t.Fatalf("got %v, want INTEGER_DEC", toks[0].Type)
	}
}

func TestSecondDotIsLexicalFailure(t *testing.T) {
	tz := New(source.New("test", []byte("1.2.3")))
	_, err := tz.Next()
	if err == nil {
		t.Fatal("expected lexical error for second '.' in numeric literal")
	}
}

func TestDotAfterHexPrefixIsLexicalFailure(t *testing.T) {
	tz := New(source.New("test", []byte("0x1A.5")))
	_, err := tz.Next()
	if err == nil {
		t.Fatal("expected lexical error for '.' after hex prefix")
	}
}

func TestStringLiteralToken(t *testing.T) {
	toks := tokenize(t, `"hello\nworld"`)
	if toks[0].Type != token.STRING {
		t.Fatalf("got %v, want STRING", toks[0].Type)
	}
	if toks[0].Range.Len() != len(`"hello\nworld"`) {
		t.Fatalf("range len = %d, want %d", toks[0].Range.Len(), len(`"hello\nworld"`))
	}
}

func TestUnterminatedStringIsLexicalFailure(t *testing.T) {
	tz := New(source.New("test", []byte(`"hello`)))
	_, err := tz.Next()
	if err == nil {
		t.Fatal("expected lexical error for unterminated string")
	}
}

func TestLineCommentRequiresSpace(t *testing.T) {
	// '# ' starts a comment and is skipped entirely.
	assertTypes(t, "# this is a comment\nx", token.NAME)
	// '#' not followed by a space is its own token.
	assertTypes(t, "#x", token.HASH, token.NAME)
}

func TestTokenRangesAreMonotoneAndNonOverlapping(t *testing.T) {
	toks := tokenize(t, "abc + def * 2")
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1], toks[i]
		if cur.Range.Beg < prev.Range.End {
			t.Fatalf("token %d overlaps token %d: %+v vs %+v", i, i-1, prev.Range, cur.Range)
		}
	}
}

func TestUnknownByteIsLexicalFailure(t *testing.T) {
	tz := New(source.New("test", []byte{0x01}))
	_, err := tz.Next()
	if err == nil {
		t.Fatal("expected lexical error for unknown character byte")
	}
}
