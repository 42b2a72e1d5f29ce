// Package ast defines the arena-backed abstract syntax tree: tagged
// discriminated Node values, the Value/Label/Routine/Scope records a
// scope accretes, and the Arena that owns all of it for one compile unit.
//
// Children are referenced by stable NodeID (an index into the Arena's
// append-only node pool) rather than by raw pointer. This sidesteps the
// pointer-invalidation hazard spec §9 calls out for the C original's
// memmove-based node splicing: a Go slice append never moves memory a
// caller is still holding live data through, it only changes which array
// the *next* append writes into, so an index computed before a later
// Push/alloc call remains valid and keeps reading the same bytes. The
// Pratt parser (package parser) never needs to splice a node between an
// already-built left operand and its right operand in the first place:
// it defers constructing the parent node until both children's IDs are
// known, which a recursive-descent recursion naturally provides.
package ast

import (
	"github.com/opal-lang/opal/internal/arena"
	"github.com/opal-lang/opal/internal/source"
	"github.com/opal-lang/opal/internal/token"
)

// NodeID indexes into an Arena's node pool. NilNode marks an absent
// optional child (e.g. the "else" branch of a two-armed conditional).
type NodeID int32

// NilNode is the sentinel absent-node ID.
const NilNode NodeID = -1

// Kind discriminates the AST node shapes of spec §3.
type Kind uint8

const (
	KindInteger Kind = iota
	KindReal
	KindString
	KindReference
	KindUnary
	KindBinary
	KindTernary
	KindValue
	KindScope
)

// OpInvoke is a synthetic operator the parser assigns to the implicit
// call/juxtaposition binary node; the tokenizer never emits it, since
// invocation has no token of its own — it is inferred from two adjacent
// complete expressions.
const OpInvoke token.Type = 255

// Node is the tagged, discriminated AST value. Only the fields relevant
// to Kind are meaningful; the rest are zero.
type Node struct {
	Kind  Kind
	Range source.Range

	Op token.Type // operator for Unary/Binary/Ternary

	Int uint64 // KindInteger
	Flt float64 // KindReal
	Str []byte  // KindString: decoded bytes (arena-owned)
	Ref []byte  // KindReference: zero-copy view into source

	Children [3]NodeID // Unary/Binary/Ternary operand slots, NilNode if absent

	Value ValueID // KindValue
	Scope ScopeID // KindScope
}

// ValueID, LabelID, RoutineID, ScopeID index into their respective Arena
// pools. NilID marks "absent" (e.g. a Routine with no body Scope).
type (
	ValueID   int32
	LabelID   int32
	RoutineID int32
	ScopeID   int32
)

// NilID is shared by all four ID kinds.
const NilID = -1

// Value is a named declaration: an optional explicit type expression, an
// optional initialization expression, and a constant/mutable flag. If
// both Type and Init are NilNode the Value is ill-formed (rejected at
// parse time, never constructed).
type Value struct {
	Range      source.Range
	Name       []byte
	Type       NodeID
	Init       NodeID
	IsConstant bool
}

// Label records a forward-resolvable jump target: the statement index in
// its enclosing Scope's statement list at which the label appears.
type Label struct {
	Name     []byte
	Position int
}

// Routine is a named parameter list plus an optional body Scope. The
// parameters are a flat declaration-precedence expression tree, not a
// separate list; a later pass (or code generator) interprets its shape.
type Routine struct {
	Name   []byte
	Params NodeID
	Scope  ScopeID // NilID if this is a declaration without a body
}

// Scope is a lexically-delimited `{ ... }` region: an ordered statement
// list plus three unordered (accretion-ordered) tables. Identifiers
// SHOULD be unique within each table; the core only emits them — dup
// detection is a later semantic-check responsibility (spec §3).
type Scope struct {
	Parent ScopeID // NilID at the top level
	Owner  RoutineID // NilID unless this is a routine's body
	Range  source.Range

	Statements []NodeID

	Values   []ValueID
	Labels   []LabelID
	Routines []RoutineID

	valueIndex   map[string]ValueID
	labelIndex   map[string]LabelID
	routineIndex map[string]RoutineID
}

// Arena owns every allocation for one compile unit: the AST node pool,
// the Value/Label/Routine/Scope pools, and the raw byte buffer decoded
// string literals are copied into. Released as a whole (by falling out
// of scope) when the compile unit ends; there is no per-allocation free.
type Arena struct {
	Bytes *arena.Buffer

	nodes    []Node
	values   []Value
	labels   []Label
	routines []Routine
	scopes   []Scope
}

// New constructs an Arena with the given byte-buffer reservation and
// commission-rate (see package arena); pass 0 for either to use the
// spec's defaults (1 GiB reservation, 64 KiB commission step).
func New(reservationSize, commissionRate int) *Arena {
	return &Arena{
		Bytes:    arena.New(reservationSize, commissionRate),
		nodes:    make([]Node, 0, 256),
		values:   make([]Value, 0, 64),
		labels:   make([]Label, 0, 16),
		routines: make([]Routine, 0, 16),
		scopes:   make([]Scope, 0, 16),
	}
}

// NewNode appends n to the node pool and returns its stable ID.
func (a *Arena) NewNode(n Node) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return id
}

// Node dereferences id. Calling with NilNode panics; callers must check
// against NilNode themselves, since a nil dereference at this layer
// usually means a parser bug rather than recoverable input.
func (a *Arena) Node(id NodeID) *Node { return &a.nodes[id] }

// NodeCount returns how many nodes have been allocated.
func (a *Arena) NodeCount() int { return len(a.nodes) }

// NewValue appends v and returns its ID.
func (a *Arena) NewValue(v Value) ValueID {
	id := ValueID(len(a.values))
	a.values = append(a.values, v)
	return id
}

// Value dereferences id.
func (a *Arena) Value(id ValueID) *Value { return &a.values[id] }

// NewLabel appends l and returns its ID.
func (a *Arena) NewLabel(l Label) LabelID {
	id := LabelID(len(a.labels))
	a.labels = append(a.labels, l)
	return id
}

// Label dereferences id.
func (a *Arena) Label(id LabelID) *Label { return &a.labels[id] }

// NewRoutine appends r and returns its ID.
func (a *Arena) NewRoutine(r Routine) RoutineID {
	id := RoutineID(len(a.routines))
	a.routines = append(a.routines, r)
	return id
}

// Routine dereferences id.
func (a *Arena) Routine(id RoutineID) *Routine { return &a.routines[id] }

// NewScope appends an empty Scope with the given parent/owner/range and
// returns its ID.
func (a *Arena) NewScope(parent ScopeID, owner RoutineID, rng source.Range) ScopeID {
	id := ScopeID(len(a.scopes))
	a.scopes = append(a.scopes, Scope{
		Parent:       parent,
		Owner:        owner,
		Range:        rng,
		valueIndex:   make(map[string]ValueID),
		labelIndex:   make(map[string]LabelID),
		routineIndex: make(map[string]RoutineID),
	})
	return id
}

// Scope dereferences id.
func (a *Arena) Scope(id ScopeID) *Scope { return &a.scopes[id] }

// AddStatement appends stmt to scope's ordered statement list.
func (a *Arena) AddStatement(scope ScopeID, stmt NodeID) {
	s := a.Scope(scope)
	s.Statements = append(s.Statements, stmt)
}

// AddValue accretes a Value declaration onto scope's Values table, in
// declaration order.
func (a *Arena) AddValue(scope ScopeID, v ValueID) {
	s := a.Scope(scope)
	s.Values = append(s.Values, v)
	s.valueIndex[string(a.Value(v).Name)] = v
}

// AddLabel accretes a Label onto scope's Labels table.
func (a *Arena) AddLabel(scope ScopeID, l LabelID) {
	s := a.Scope(scope)
	s.Labels = append(s.Labels, l)
	s.labelIndex[string(a.Label(l).Name)] = l
}

// AddRoutine accretes a Routine onto scope's Routines table.
func (a *Arena) AddRoutine(scope ScopeID, r RoutineID) {
	s := a.Scope(scope)
	s.Routines = append(s.Routines, r)
	s.routineIndex[string(a.Routine(r).Name)] = r
}

// LookupValue finds name in scope's Values table, or its ancestors if
// walkParents is true.
func (a *Arena) LookupValue(scope ScopeID, name string, walkParents bool) (ValueID, bool) {
	for scope != NilID {
		s := a.Scope(scope)
		if id, ok := s.valueIndex[name]; ok {
			return id, true
		}
		if !walkParents {
			break
		}
		scope = s.Parent
	}
	return 0, false
}

// LookupLabel finds name in scope's Labels table (labels do not cross
// scope boundaries).
func (a *Arena) LookupLabel(scope ScopeID, name string) (LabelID, bool) {
	id, ok := a.Scope(scope).labelIndex[name]
	return id, ok
}

// LookupRoutine finds name in scope's Routines table, or its ancestors
// if walkParents is true.
func (a *Arena) LookupRoutine(scope ScopeID, name string, walkParents bool) (RoutineID, bool) {
	for scope != NilID {
		s := a.Scope(scope)
		if id, ok := s.routineIndex[name]; ok {
			return id, true
		}
		if !walkParents {
			break
		}
		scope = s.Parent
	}
	return 0, false
}
