// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

// This file defines a minimal, in-memory implementation of the external
// interfaces (Reference, ClassHierarchy, TypeLattice, CallCounts) used
// across the package's tests. It models a tiny nominal type lattice:
// primitive "int"/"bool" below a chain of named struct types rooted at
// "Object", exactly the shape SignatureSynthesizer's upper-bound walk
// expects.

import "fmt"

// testType is a ValueType: either a primitive or a named struct with a
// fixed depth below Object.
type testType struct {
	name      string
	primitive bool
	nullable  bool
	depth     int // 0 for the root "Object"; ignored for primitives
}

func (t testType) IsPrimitive() bool { return t.primitive }
func (t testType) IsNullable() bool  { return t.nullable }
func (t testType) WithNullable(n bool) ValueType {
	t.nullable = n
	return t
}
func (t testType) Equal(other ValueType) bool {
	o, ok := other.(testType)
	return ok && o.name == t.name && o.primitive == t.primitive && o.nullable == t.nullable
}
func (t testType) String() string {
	if t.nullable {
		return t.name + "?"
	}
	return t.name
}

// testLattice is a tiny TypeLattice: source types are plain strings
// naming either a primitive ("int", "bool") or a struct in a fixed
// chain supplied at construction (deepest first is not required; depth
// is looked up by name).
type testLattice struct {
	depths map[string]int // struct name -> depth
	supers map[string]string
}

func newTestLattice() *testLattice {
	// Object(0) <- Animal(1) <- Dog(2)
	//            <- Plant(1)
	return &testLattice{
		depths: map[string]int{"Object": 0, "Animal": 1, "Plant": 1, "Dog": 2, "Cat": 2},
		supers: map[string]string{"Animal": "Object", "Plant": "Object", "Dog": "Animal", "Cat": "Animal"},
	}
}

func (l *testLattice) TranslateType(t SourceType) ValueType {
	name := t.(string)
	switch name {
	case "int", "bool":
		return testType{name: name, primitive: true}
	case "int?", "bool?":
		return testType{name: name[:len(name)-1], primitive: true, nullable: true}
	default:
		nullable := false
		if len(name) > 0 && name[len(name)-1] == '?' {
			nullable = true
			name = name[:len(name)-1]
		}
		return testType{name: name, nullable: nullable}
	}
}

func (l *testLattice) TopNullable() ValueType {
	return testType{name: "Object", nullable: true}
}

func (l *testLattice) BoxedStructFor(primitive ValueType) ValueType {
	t := primitive.(testType)
	return testType{name: "Boxed" + t.name, nullable: t.nullable, depth: 1}
}

func (l *testLattice) StructDepth(t ValueType) int {
	tt := t.(testType)
	if d, ok := l.depths[tt.name]; ok {
		return d
	}
	return tt.depth
}

func (l *testLattice) SuperTypeOf(t ValueType) ValueType {
	tt := t.(testType)
	super, ok := l.supers[tt.name]
	if !ok {
		super = "Object"
	}
	return testType{name: super, nullable: tt.nullable}
}

// fixedCounts is a CallCounts backed by a plain map, defaulting to 0.
type fixedCounts map[SelectorID]uint32

func (c fixedCounts) CallCount(id SelectorID) uint32 { return c[id] }

// testRef is a Reference for tests: every predicate is a plain field, no
// behavior.
type testRef struct {
	name        string
	enclosing   ClassID
	getter      bool
	setter      bool
	tearOff     bool
	abstract    bool
	wasmBase    bool
	noSuchMeth  bool
	dynamic     bool
	hasTearOff  bool
	hasNonThis  bool
	staticPrag  bool
	getterSel   SelectorID
	methodSel   SelectorID
	params      ParameterInfo
	sig         MemberSignature
}

func (r *testRef) IsGetter() bool                    { return r.getter }
func (r *testRef) IsSetter() bool                    { return r.setter }
func (r *testRef) IsTearOff() bool                   { return r.tearOff }
func (r *testRef) IsAbstract() bool                  { return r.abstract }
func (r *testRef) EnclosingClassID() ClassID         { return r.enclosing }
func (r *testRef) MemberName() string                { return r.name }
func (r *testRef) ParameterShape() ParameterInfo     { return r.params }
func (r *testRef) Signature() MemberSignature        { return r.sig }
func (r *testRef) GetterSelectorID() SelectorID      { return r.getterSel }
func (r *testRef) MethodOrSetterSelectorID() SelectorID { return r.methodSel }
func (r *testRef) CalledDynamically() bool           { return r.dynamic }
func (r *testRef) HasTearOffUses() bool              { return r.hasTearOff }
func (r *testRef) HasNonThisUses() bool              { return r.hasNonThis }
func (r *testRef) StaticDispatchPragma() bool        { return r.staticPrag }
func (r *testRef) IsNoSuchMethodHook() bool          { return r.noSuchMeth }
func (r *testRef) EnclosingClassIsWasmBase() bool    { return r.wasmBase }

// method builds a concrete, non-abstract method reference named name,
// declared on class c, selector id sel, with the given receiver/result
// source types and no parameters beyond the receiver.
func method(name string, c ClassID, sel SelectorID, receiver, result string) *testRef {
	return &testRef{
		name:      name,
		enclosing: c,
		methodSel: sel,
		sig:       MemberSignature{Receiver: receiver, Result: result},
	}
}

func abstractMethod(name string, sel SelectorID, receiver, result string) *testRef {
	r := method(name, 0, sel, receiver, result)
	r.abstract = true
	return r
}

// chainHierarchy builds a ClassHierarchy for a simple super-first chain
// described by (name, superIndex, concreteID-or-nil, members) tuples.
type chainHierarchy struct {
	classes []ClassInfo
	maxID   ClassID
}

func (h *chainHierarchy) Classes() []ClassInfo       { return h.classes }
func (h *chainHierarchy) MaxConcreteClassID() ClassID { return h.maxID }

func concreteID(id ClassID) *ClassID { return &id }

func fmtSel(id SelectorID) string { return fmt.Sprintf("sel#%d", id) }
