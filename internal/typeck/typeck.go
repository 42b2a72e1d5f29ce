// Package typeck implements the integer-width typing sketch and the
// label forward-reference check described in SPEC_FULL.md's supplemented
// features. Both are partial passes over an already-parsed ast.Arena —
// neither is a full semantic analyzer, and neither feeds a code
// generator, which remains out of scope.
package typeck

import (
	"fmt"

	"github.com/opal-lang/opal/internal/ast"
	"github.com/opal-lang/opal/internal/diag"
	"github.com/opal-lang/opal/internal/source"
	"github.com/opal-lang/opal/internal/token"
)

// namedWidths maps the built-in integer type names to their bit width.
// Any other type name (structs, aliases, composite type expressions) is
// outside the sketch and silently skipped, per SPEC_FULL.md's framing of
// this as a partial checker.
var namedWidths = map[string]int{
	"int8": 8, "uint8": 8,
	"int16": 16, "uint16": 16,
	"int32": 32, "uint32": 32,
	"int64": 64, "uint64": 64,
	"int": 64, "uint": 64,
}

// IntegerWidth returns the minimal unsigned bit width (8/16/32/64) that
// holds v.
func IntegerWidth(v uint64) int {
	switch {
	case v <= 0xFF:
		return 8
	case v <= 0xFFFF:
		return 16
	case v <= 0xFFFFFFFF:
		return 32
	default:
		return 64
	}
}

// IsPrimitive reports whether the expression rooted at id denotes a
// primitive (scalar) value rather than a composite type expression
// (`[N]int`, `(a:int)->int`). Grouping and ordinary unary/binary operators
// are transparent: primitiveness recurses into their operands.
func IsPrimitive(a *ast.Arena, id ast.NodeID) bool {
	if id == ast.NilNode {
		return false
	}
	n := a.Node(id)
	switch n.Kind {
	case ast.KindInteger, ast.KindReal, ast.KindString, ast.KindReference:
		return true
	case ast.KindUnary:
		if n.Op == token.LBRACKET {
			return false // enumeration: a composite array-type marker
		}
		return IsPrimitive(a, n.Children[0])
	case ast.KindBinary:
		if n.Op == token.ARROW {
			return false // routine-type marker
		}
		return IsPrimitive(a, n.Children[0]) && IsPrimitive(a, n.Children[1])
	case ast.KindTernary:
		return IsPrimitive(a, n.Children[1])
	}
	return false
}

// CheckPrimitiveOnly enforces the original's constraint that `-`, `~`,
// `<<`, and `>>` only apply to primitive operands, walking every node
// reachable from root. It stops at the first violation, reports it to sink
// and returns it, matching the fatal-on-first-failure propagation policy
// of spec §7.
func CheckPrimitiveOnly(a *ast.Arena, src *source.Source, sink *diag.Sink, root ast.NodeID) error {
	var firstErr error
	walkNodes(a, root, func(id ast.NodeID) {
		if firstErr != nil {
			return
		}
		n := a.Node(id)
		switch n.Kind {
		case ast.KindUnary:
			if (n.Op == token.MINUS || n.Op == token.TILDE) && !IsPrimitive(a, n.Children[0]) {
				firstErr = report(sink, src, n.Range, "operator %s requires a primitive operand", n.Op)
			}
		case ast.KindBinary:
			if (n.Op == token.LSHIFT || n.Op == token.RSHIFT) &&
				(!IsPrimitive(a, n.Children[0]) || !IsPrimitive(a, n.Children[1])) {
				firstErr = report(sink, src, n.Range, "operator %s requires primitive operands", n.Op)
			}
		}
	})
	return firstErr
}

// CheckValue applies the mismatched-types sketch to one Value: if its
// declared type names a built-in integer width and its initializer is an
// integer literal, the literal's minimal width must fit within the
// declared width.
func CheckValue(a *ast.Arena, src *source.Source, sink *diag.Sink, v *ast.Value) error {
	if v.Type == ast.NilNode || v.Init == ast.NilNode {
		return nil
	}
	typeNode := a.Node(v.Type)
	if typeNode.Kind != ast.KindReference {
		return nil
	}
	declared, ok := namedWidths[string(typeNode.Ref)]
	if !ok {
		return nil
	}
	initNode := a.Node(v.Init)
	if initNode.Kind != ast.KindInteger {
		return nil
	}
	if actual := IntegerWidth(initNode.Int); actual > declared {
		return report(sink, src, v.Range, "mismatched types: %q declared %s cannot hold a %d-bit literal",
			v.Name, typeNode.Ref, actual)
	}
	return nil
}

// CheckLabels walks every jump (`^`) expression reachable from scope's
// statements and confirms its target resolves in scope's Labels table.
// Labels are forward-resolvable (spec §3), so this is necessarily a
// post-parse pass: at the point a `^name` expression is parsed, a label
// later in the same scope may not have been registered yet.
func CheckLabels(a *ast.Arena, src *source.Source, sink *diag.Sink, scope ast.ScopeID) error {
	var firstErr error
	s := a.Scope(scope)
	checkJumps := func(root ast.NodeID) {
		walkNodes(a, root, func(id ast.NodeID) {
			if firstErr != nil {
				return
			}
			n := a.Node(id)
			if n.Kind != ast.KindUnary || n.Op != token.CARET {
				return
			}
			target := a.Node(n.Children[0])
			if target.Kind != ast.KindReference {
				return
			}
			if _, ok := a.LookupLabel(scope, string(target.Ref)); !ok {
				firstErr = report(sink, src, n.Range, "jump to undefined label %q", target.Ref)
			}
		})
	}
	// Constants and untyped-but-initialized values never appear in
	// Statements (only mutable initialized values emit a KindValue
	// statement), so their Init/Type expressions are walked directly here
	// rather than relying on the statement loop below to reach them.
	for _, vid := range s.Values {
		v := a.Value(vid)
		checkJumps(v.Type)
		checkJumps(v.Init)
		if firstErr != nil {
			return firstErr
		}
	}
	for _, stmt := range s.Statements {
		checkJumps(stmt)
		if firstErr != nil {
			return firstErr
		}
	}
	for _, child := range s.Routines {
		if r := a.Routine(child); r.Scope != ast.NilID {
			if err := CheckLabels(a, src, sink, r.Scope); err != nil {
				return err
			}
		}
	}
	return firstErr
}

// walkNodes visits id and every node reachable through its Children, in
// pre-order.
func walkNodes(a *ast.Arena, id ast.NodeID, visit func(ast.NodeID)) {
	if id == ast.NilNode {
		return
	}
	visit(id)
	n := a.Node(id)
	switch n.Kind {
	case ast.KindUnary, ast.KindBinary, ast.KindTernary:
		for _, c := range n.Children {
			walkNodes(a, c, visit)
		}
	}
}

func report(sink *diag.Sink, src *source.Source, rng source.Range, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if sink != nil {
		sink.Failuref(src, rng, "%s", msg)
	}
	return fmt.Errorf("%s", msg)
}
