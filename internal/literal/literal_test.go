package literal

import (
	"bytes"
	"testing"

	"github.com/opal-lang/opal/internal/arena"
)

func TestIntegerRoundTrip(t *testing.T) {
	cases := []struct {
		digits string
		base   uint64
		want   uint64
	}{
		{"1010", 2, 0b1010},
		{"42", 10, 42},
		{"ff", 16, 0xff},
		{"FF", 16, 0xff},
		{"1_000_000", 10, 1000000},
	}
	for _, c := range cases {
		if got := Integer([]byte(c.digits), c.base); got != c.want {
			t.Errorf("Integer(%q, %d) = %d, want %d", c.digits, c.base, got, c.want)
		}
	}
}

func TestRealParsesDecimal(t *testing.T) {
	f, err := Real([]byte("3.14"))
	if err != nil {
		t.Fatal(err)
	}
	if f != 3.14 {
		t.Fatalf("Real(3.14) = %v, want 3.14", f)
	}
}

func TestStringEscapeIdempotence(t *testing.T) {
	a := arena.New(1<<16, 4096)

	got, err := String(a, []byte(`"hello"`))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("String(\"hello\") = %q, want %q", got, "hello")
	}

	got, err = String(a, []byte(`"\n"`))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x0A}) {
		t.Fatalf(`String("\n") = %v, want [0x0A]`, got)
	}

	got, err = String(a, []byte(`"\65"`))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x41}) {
		t.Fatalf(`String("\65") = %v, want [0x41]`, got)
	}
}

func TestEmptyStringIsFailure(t *testing.T) {
	a := arena.New(1<<16, 4096)
	if _, err := String(a, []byte(`""`)); err == nil {
		t.Fatal("expected failure for empty string literal")
	}
}

func TestStringPreservesMultibyteVerbatim(t *testing.T) {
	a := arena.New(1<<16, 4096)
	got, err := String(a, []byte("\"h\xc3\xa9llo\\n\""))
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte("h\xc3\xa9llo"), 0x0A)
	if !bytes.Equal(got, want) {
		t.Fatalf("String = %v, want %v", got, want)
	}
}

func TestUnrecognizedEscapeCollapsesVerbatim(t *testing.T) {
	a := arena.New(1<<16, 4096)
	got, err := String(a, []byte(`"\q"`))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("q")) {
		t.Fatalf("String(\\q) = %q, want %q", got, "q")
	}
}
