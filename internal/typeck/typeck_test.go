package typeck

import (
	"testing"

	"github.com/opal-lang/opal/internal/ast"
	"github.com/opal-lang/opal/internal/diag"
	"github.com/opal-lang/opal/internal/parser"
	"github.com/opal-lang/opal/internal/source"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func parseFile(t *testing.T, text string) (*ast.Arena, ast.ScopeID, *source.Source, *diag.Sink) {
	t.Helper()
	src := source.New("test.opl", []byte(text))
	a := ast.New(1<<16, 4096)
	sink := diag.New(discard{})
	scope, err := parser.Parse(src, a, sink)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return a, scope, src, sink
}

func TestIntegerWidthBoundaries(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 8}, {255, 8}, {256, 16}, {65535, 16}, {65536, 32}, {1 << 32, 64},
	}
	for _, c := range cases {
		if got := IntegerWidth(c.v); got != c.want {
			t.Errorf("IntegerWidth(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestCheckValueRejectsOverflowingLiteral(t *testing.T) {
	a, scope, src, sink := parseFile(t, "x: uint8 = 256;")
	v := a.Value(a.Scope(scope).Values[0])
	if err := CheckValue(a, src, sink, v); err == nil {
		t.Fatal("want mismatched-types failure for a 256 literal in a uint8")
	}
}

func TestCheckValueAcceptsFittingLiteral(t *testing.T) {
	a, scope, src, sink := parseFile(t, "x: uint8 = 200;")
	v := a.Value(a.Scope(scope).Values[0])
	if err := CheckValue(a, src, sink, v); err != nil {
		t.Fatalf("want no failure, got %v", err)
	}
}

func TestCheckPrimitiveOnlyRejectsEnumerationOperand(t *testing.T) {
	a, scope, src, sink := parseFile(t, "-[n]int;")
	stmt := a.Scope(scope).Statements[0]
	if err := CheckPrimitiveOnly(a, src, sink, stmt); err == nil {
		t.Fatal("want failure negating a composite array-type expression")
	}
}

func TestCheckPrimitiveOnlyAcceptsReferenceOperand(t *testing.T) {
	a, scope, src, sink := parseFile(t, "-x;")
	stmt := a.Scope(scope).Statements[0]
	if err := CheckPrimitiveOnly(a, src, sink, stmt); err != nil {
		t.Fatalf("want no failure negating a reference, got %v", err)
	}
}

func TestCheckLabelsAcceptsDefinedLabel(t *testing.T) {
	a, scope, src, sink := parseFile(t, "{ .loop ^loop; }")
	inner := a.Node(a.Scope(scope).Statements[0]).Scope
	if err := CheckLabels(a, src, sink, inner); err != nil {
		t.Fatalf("want no failure, got %v", err)
	}
}

func TestCheckLabelsRejectsUndefinedLabel(t *testing.T) {
	a, scope, src, sink := parseFile(t, "{ ^missing; }")
	inner := a.Node(a.Scope(scope).Statements[0]).Scope
	if err := CheckLabels(a, src, sink, inner); err == nil {
		t.Fatal("want failure jumping to an undefined label")
	}
}
