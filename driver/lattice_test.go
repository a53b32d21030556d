// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"go/token"
	"go/types"
	"testing"
)

func namedStruct(pkg *types.Package, name string) *types.Named {
	obj := types.NewTypeName(token.NoPos, pkg, name, nil)
	return types.NewNamed(obj, types.NewStruct(nil, nil), nil)
}

func TestTypeLatticeStructDepthAndSuperTypeOf(t *testing.T) {
	pkg := types.NewPackage("example.com/p", "p")
	animal := namedStruct(pkg, "Animal")
	dog := namedStruct(pkg, "Dog")

	lattice := newTypeLattice(map[types.Type]types.Type{dog: animal})

	vAnimal := valueType{t: animal}
	vDog := valueType{t: dog}

	if d := lattice.StructDepth(vAnimal); d != 0 {
		t.Errorf("StructDepth(Animal) = %d, want 0", d)
	}
	if d := lattice.StructDepth(vDog); d != 1 {
		t.Errorf("StructDepth(Dog) = %d, want 1", d)
	}

	super := lattice.SuperTypeOf(vDog).(valueType)
	if !types.Identical(super.t, animal) {
		t.Errorf("SuperTypeOf(Dog) = %v, want Animal", super.t)
	}

	// A type with no recorded super climbs straight to the root.
	root := lattice.SuperTypeOf(vAnimal).(valueType)
	if !types.Identical(root.t, topType) {
		t.Errorf("SuperTypeOf(Animal) = %v, want the lattice root", root.t)
	}
}

func TestTypeLatticeNullablePropagatesThroughSuperTypeOf(t *testing.T) {
	pkg := types.NewPackage("example.com/p", "p")
	animal := namedStruct(pkg, "Animal")
	dog := namedStruct(pkg, "Dog")
	lattice := newTypeLattice(map[types.Type]types.Type{dog: animal})

	v := valueType{t: dog, nullable: true}
	super := lattice.SuperTypeOf(v).(valueType)
	if !super.nullable {
		t.Error("SuperTypeOf should preserve the nullable bit")
	}
}

func TestValueTypeEqualDistinguishesNullability(t *testing.T) {
	pkg := types.NewPackage("example.com/p", "p")
	animal := namedStruct(pkg, "Animal")

	a := valueType{t: animal, nullable: false}
	b := valueType{t: animal, nullable: true}
	if a.Equal(b) {
		t.Error("values differing only in nullability should not be Equal")
	}
	if !a.Equal(valueType{t: animal, nullable: false}) {
		t.Error("identical type and nullability should be Equal")
	}
}

func TestBoxedStructForPreservesNullability(t *testing.T) {
	lattice := newTypeLattice(nil)
	prim := valueType{t: types.Typ[types.Int], nullable: true}
	boxed := lattice.BoxedStructFor(prim).(valueType)
	if !boxed.nullable {
		t.Error("BoxedStructFor should preserve the source nullable bit")
	}
}
