// Package dump renders an ast.Arena as the JSON-like nested structure of
// spec §4.10: each non-null node is `{"<tag>": payload}`, where payload is
// an array of child dumps for binary/ternary, a single dump for unary, or
// a literal form for leaves. This is the canonical externalization used
// by end-to-end tests (spec §8) — it is deliberately not encoding/json
// output (no field-name quoting rules to satisfy, no struct tags to keep
// in sync), just a hand-rolled writer matching the exact shape the spec
// names.
package dump

import (
	"fmt"
	"io"
	"strconv"

	"github.com/opal-lang/opal/internal/ast"
	"github.com/opal-lang/opal/internal/token"
)

// Dumper writes node/value/label/routine/scope dumps for one Arena to out.
type Dumper struct {
	a   *ast.Arena
	out io.Writer
}

// New constructs a Dumper over a, writing to out.
func New(a *ast.Arena, out io.Writer) *Dumper {
	return &Dumper{a: a, out: out}
}

// Scope writes the dump of the Scope identified by id.
func (d *Dumper) Scope(id ast.ScopeID) error {
	return d.writeScope(id)
}

// Node writes the dump of the Node identified by id, or "null" if id is
// ast.NilNode.
func (d *Dumper) Node(id ast.NodeID) error {
	return d.writeNode(id)
}

func (d *Dumper) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(d.out, format, args...)
	return err
}

func (d *Dumper) writeNode(id ast.NodeID) error {
	if id == ast.NilNode {
		return d.printf("null")
	}
	n := d.a.Node(id)
	switch n.Kind {
	case ast.KindInteger:
		return d.printf(`{"integer": %d}`, n.Int)
	case ast.KindReal:
		return d.printf(`{"real": %s}`, strconv.FormatFloat(n.Flt, 'g', -1, 64))
	case ast.KindString:
		return d.printf(`{"string": %s}`, strconv.Quote(string(n.Str)))
	case ast.KindReference:
		return d.printf(`{"reference": %s}`, strconv.Quote(string(n.Ref)))
	case ast.KindUnary:
		return d.writeTagged(tagName(n.Op, 1), func() error { return d.writeNode(n.Children[0]) })
	case ast.KindBinary:
		return d.writeTagged(tagName(n.Op, 2), func() error {
			return d.writeArray(n.Children[0], n.Children[1])
		})
	case ast.KindTernary:
		return d.writeTagged("condition", func() error {
			return d.writeArray(n.Children[0], n.Children[1], n.Children[2])
		})
	case ast.KindValue:
		return d.writeTagged("value-ref", func() error { return d.printf("%d", n.Value) })
	case ast.KindScope:
		return d.writeTagged("scope", func() error { return d.writeScope(n.Scope) })
	}
	return fmt.Errorf("dump: unknown node kind %d", n.Kind)
}

func (d *Dumper) writeTagged(tag string, payload func() error) error {
	if err := d.printf(`{%q: `, tag); err != nil {
		return err
	}
	if err := payload(); err != nil {
		return err
	}
	return d.printf("}")
}

func (d *Dumper) writeArray(ids ...ast.NodeID) error {
	if err := d.printf("["); err != nil {
		return err
	}
	for i, id := range ids {
		if i > 0 {
			if err := d.printf(", "); err != nil {
				return err
			}
		}
		if err := d.writeNode(id); err != nil {
			return err
		}
	}
	return d.printf("]")
}

func (d *Dumper) writeScope(id ast.ScopeID) error {
	s := d.a.Scope(id)
	if err := d.printf(`{"values": [`); err != nil {
		return err
	}
	for i, vid := range s.Values {
		if i > 0 {
			if err := d.printf(", "); err != nil {
				return err
			}
		}
		if err := d.writeValue(vid); err != nil {
			return err
		}
	}
	if err := d.printf(`], "labels": [`); err != nil {
		return err
	}
	for i, lid := range s.Labels {
		if i > 0 {
			if err := d.printf(", "); err != nil {
				return err
			}
		}
		l := d.a.Label(lid)
		if err := d.printf(`{"identifier": %s, "position": %d}`, strconv.Quote(string(l.Name)), l.Position); err != nil {
			return err
		}
	}
	if err := d.printf(`], "routines": [`); err != nil {
		return err
	}
	for i, rid := range s.Routines {
		if i > 0 {
			if err := d.printf(", "); err != nil {
				return err
			}
		}
		if err := d.writeRoutine(rid); err != nil {
			return err
		}
	}
	if err := d.printf(`], "statements": [`); err != nil {
		return err
	}
	for i, sid := range s.Statements {
		if i > 0 {
			if err := d.printf(", "); err != nil {
				return err
			}
		}
		if err := d.writeNode(sid); err != nil {
			return err
		}
	}
	return d.printf("]}")
}

func (d *Dumper) writeValue(id ast.ValueID) error {
	v := d.a.Value(id)
	if err := d.printf(`{"identifier": %s, "type": `, strconv.Quote(string(v.Name))); err != nil {
		return err
	}
	if err := d.writeNode(v.Type); err != nil {
		return err
	}
	if err := d.printf(`, "initialization": `); err != nil {
		return err
	}
	if err := d.writeNode(v.Init); err != nil {
		return err
	}
	return d.printf(`, "constant": %t}`, v.IsConstant)
}

func (d *Dumper) writeRoutine(id ast.RoutineID) error {
	r := d.a.Routine(id)
	if err := d.printf(`{"identifier": %s, "parameters": `, strconv.Quote(string(r.Name))); err != nil {
		return err
	}
	if err := d.writeNode(r.Params); err != nil {
		return err
	}
	if err := d.printf(`, "body": `); err != nil {
		return err
	}
	if r.Scope == ast.NilID {
		return d.printf("null}")
	}
	if err := d.writeScope(r.Scope); err != nil {
		return err
	}
	return d.printf("}")
}

// tagName maps an operator token to the dump tag spec §4.10 expects for
// it. arity distinguishes the unary "negation"/"designation" readings from
// their binary "subtraction"/"resolution" counterparts for overloaded
// tokens (spec §9: "the parser distinguishes them by whether an
// expression has already been produced at the current recursion level").
func tagName(op token.Type, arity int) string {
	if arity == 1 {
		if name, ok := unaryTagNames[op]; ok {
			return name
		}
		return "unary"
	}
	if name, ok := binaryTagNames[op]; ok {
		return name
	}
	return "binary"
}
