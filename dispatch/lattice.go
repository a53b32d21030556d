// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

// ValueType is a target-level value type, as produced by a TypeLattice.
// The core treats it opaquely beyond the predicates below, which are
// exactly what SignatureSynthesizer's per-slot upper bound (spec §4.3)
// needs.
type ValueType interface {
	// IsPrimitive reports whether this is an unboxed primitive (as
	// opposed to a heap/struct type).
	IsPrimitive() bool
	// IsNullable reports whether this type admits a null value.
	IsNullable() bool
	// WithNullable returns the same type with nullability set to
	// nullable, leaving everything else unchanged.
	WithNullable(nullable bool) ValueType
	// Equal reports whether this and other denote the same type,
	// including nullability.
	Equal(other ValueType) bool
	String() string
}

// TypeLattice is the external collaborator (C1) that translates
// source-level types into target value types and exposes the lattice
// operations SignatureSynthesizer needs to compute upper bounds.
type TypeLattice interface {
	// TranslateType converts a source-level type to its target value
	// type.
	TranslateType(t SourceType) ValueType
	// TopNullable returns the top of the lattice, nullable, used as a
	// placeholder for unreachable slots.
	TopNullable() ValueType
	// BoxedStructFor returns the boxed struct-heap equivalent of an
	// unboxed primitive type.
	BoxedStructFor(primitive ValueType) ValueType
	// StructDepth returns a struct heap type's depth in the supertype
	// chain (0 at the top).
	StructDepth(t ValueType) int
	// SuperTypeOf returns a struct heap type's immediate supertype.
	SuperTypeOf(structType ValueType) ValueType
}

// Param is one input slot of a synthesized FunctionType.
type Param struct {
	Type        ValueType
	EnsureBoxed bool
}

// FunctionType is the uniform call signature computed for a selector
// (spec §4.3). TypeParamCount records the arity of the uniform run of
// type-reflection slots prepended ahead of the receiver; the slots
// themselves are runtime type tokens with no TypeLattice representation,
// so only their count is modeled here.
type FunctionType struct {
	TypeParamCount int
	Receiver       ValueType
	Positional     []Param
	Named          map[string]Param
	// Results has exactly one entry for methods and getters (including
	// tear-offs), and none for setters.
	Results []ValueType
}
