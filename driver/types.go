// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"go/types"

	"github.com/vtablec/vtablec/dispatch"
)

// valueType adapts a go/types.Type (plus an explicit nullability bit,
// since Go itself has no nullable/non-nullable distinction) to
// dispatch.ValueType.
type valueType struct {
	t        types.Type
	nullable bool
}

func (v valueType) IsPrimitive() bool {
	b, ok := v.t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsUntyped == 0
}

func (v valueType) IsNullable() bool { return v.nullable }

func (v valueType) WithNullable(n bool) dispatch.ValueType {
	v.nullable = n
	return v
}

func (v valueType) Equal(other dispatch.ValueType) bool {
	o, ok := other.(valueType)
	return ok && o.nullable == v.nullable && types.Identical(o.t, v.t)
}

func (v valueType) String() string {
	s := v.t.String()
	if v.nullable {
		s += "?"
	}
	return s
}

// topType is the lattice's root: the empty interface, always nullable
// in Go's reference semantics.
var topType = types.NewInterfaceType(nil, nil)

// typeLattice implements dispatch.TypeLattice over a fixed struct
// embedding forest discovered by LoadProgram. superOf maps a named struct
// type to the named struct type it embeds anonymously (spec's
// single-inheritance model; if a struct embeds several, discoverClasses
// keeps the last one); structDepth caches
// each named type's distance from the lattice root.
type typeLattice struct {
	superOf     map[types.Type]types.Type
	structDepth map[types.Type]int
}

func newTypeLattice(superOf map[types.Type]types.Type) *typeLattice {
	l := &typeLattice{superOf: superOf, structDepth: make(map[types.Type]int)}
	var depth func(t types.Type) int
	depth = func(t types.Type) int {
		if d, ok := l.structDepth[t]; ok {
			return d
		}
		super, ok := l.superOf[t]
		d := 0
		if ok {
			d = depth(super) + 1
		}
		l.structDepth[t] = d
		return d
	}
	for t := range superOf {
		depth(t)
	}
	return l
}

// TranslateType implements dispatch.TypeLattice. src is always a
// go/types.Type handed back by Signature()/ParameterShape() accessors
// elsewhere in this package.
func (l *typeLattice) TranslateType(src dispatch.SourceType) dispatch.ValueType {
	t := src.(types.Type)
	return valueType{t: t}
}

func (l *typeLattice) TopNullable() dispatch.ValueType {
	return valueType{t: topType, nullable: true}
}

func (l *typeLattice) BoxedStructFor(primitive dispatch.ValueType) dispatch.ValueType {
	// Go has no unboxed/boxed distinction at the type-system level; the
	// interface type is the closest analogue of a heap-allocated wrapper
	// around a primitive, and it sits at lattice depth 0 alongside every
	// other struct whose embedding chain bottoms out at the root.
	return valueType{t: topType, nullable: primitive.IsNullable()}
}

func (l *typeLattice) StructDepth(t dispatch.ValueType) int {
	vt := t.(valueType)
	return l.structDepth[vt.t] // zero for topType and any unmodeled type
}

func (l *typeLattice) SuperTypeOf(t dispatch.ValueType) dispatch.ValueType {
	vt := t.(valueType)
	super, ok := l.superOf[vt.t]
	if !ok {
		return valueType{t: topType, nullable: vt.nullable}
	}
	return valueType{t: super, nullable: vt.nullable}
}
