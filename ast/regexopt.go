// Package ast defines BREX's algebraic regex operator tree and the
// surrounding toplevel/namespace structures. AST nodes are created by the
// parser and never mutated afterward; the resolver produces a new,
// standalone tree per fully-qualified name.
package ast

import "github.com/marron-at-work/brex/char"

// Opt is the sum type for regex operator tree nodes. Implementations are
// an exhaustive, closed set; callers dispatch with a type switch rather
// than dynamic method lookup, matching the tagged-sum style of the
// surface language's JSON form (see package astjson).
type Opt interface {
	optNode()
}

// Literal matches the exact sequence of codepoints.
type Literal struct {
	Codes   []char.CodePoint
	Unicode bool
}

// CharRange matches one character against a class.
type CharRange struct {
	Class char.CharClass
}

// Dot matches any one character in the current alphabet.
type Dot struct{}

// NamedRef refers to another regex's root, resolved by name/env resolution.
// Name is unqualified as written; Qualified is filled in by the
// qualification pass with the fully-qualified `NS::Local` form.
type NamedRef struct {
	Name      string
	Qualified string
}

// EnvRef refers to an environment-bound literal, resolved at link time.
type EnvRef struct {
	Name string
}

// Star matches the operand zero or more times.
type Star struct{ Operand Opt }

// Plus matches the operand one or more times.
type Plus struct{ Operand Opt }

// Infinite is the sentinel for an unbounded repetition upper bound.
const Infinite = -1

// RangeRepeat matches the operand between Low and High times, inclusive.
// High == Infinite denotes an unbounded upper bound.
type RangeRepeat struct {
	Operand  Opt
	Low      uint16
	High     int32 // Infinite for unbounded
}

// Optional matches the operand zero or one times.
type Optional struct{ Operand Opt }

// AnyOf is alternation; after normalization it has at least two operands.
type AnyOf struct{ Operands []Opt }

// Sequence is concatenation.
type Sequence struct{ Operands []Opt }

// Negate is complement under the alphabet's Σ*.
type Negate struct{ Operand Opt }

// AllOf is intersection; after normalization it has at least two operands.
type AllOf struct{ Operands []Opt }

func (*Literal) optNode()     {}
func (*CharRange) optNode()   {}
func (*Dot) optNode()         {}
func (*NamedRef) optNode()    {}
func (*EnvRef) optNode()      {}
func (*Star) optNode()        {}
func (*Plus) optNode()        {}
func (*RangeRepeat) optNode() {}
func (*Optional) optNode()    {}
func (*AnyOf) optNode()       {}
func (*Sequence) optNode()    {}
func (*Negate) optNode()      {}
func (*AllOf) optNode()       {}

// NormalizeAnyOf collapses a single-operand AnyOf to its operand, as
// required by the AnyOf/AllOf invariant in spec.md §3.
func NormalizeAnyOf(operands []Opt) Opt {
	if len(operands) == 1 {
		return operands[0]
	}
	return &AnyOf{Operands: operands}
}

// NormalizeAllOf collapses a single-operand AllOf to its operand.
func NormalizeAllOf(operands []Opt) Opt {
	if len(operands) == 1 {
		return operands[0]
	}
	return &AllOf{Operands: operands}
}
