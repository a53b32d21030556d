// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"reflect"
	"testing"
)

// TestSingleMethodThreeClasses is scenario S1: three classes, each
// concretely overriding foo with a distinct target, produce three
// singleton ranges.
func TestSingleMethodThreeClasses(t *testing.T) {
	fa := method("foo", 0, 1, "A", "int")
	fb := method("foo", 1, 1, "B", "int")
	fc := method("foo", 2, 1, "C", "int")

	h := &chainHierarchy{
		maxID: 2,
		classes: []ClassInfo{
			{Name: "A", Super: -1, ConcreteID: concreteID(0), Members: []Member{ProcedureMember{Proc: fa}}},
			{Name: "B", Super: 0, ConcreteID: concreteID(1), Members: []Member{ProcedureMember{Proc: fb}}},
			{Name: "C", Super: 0, ConcreteID: concreteID(2), Members: []Member{ProcedureMember{Proc: fc}}},
		},
	}

	reg := NewSelectorRegistry(fixedCounts{})
	rb := NewTargetRangeBuilder(reg, nil)
	rb.Build(h)

	sel, err := reg.SelectorForTarget(fa)
	if err != nil {
		t.Fatalf("SelectorForTarget: %v", err)
	}
	want := []TargetRange{
		{Range: Range{0, 0}, Target: fa},
		{Range: Range{1, 1}, Target: fb},
		{Range: Range{2, 2}, Target: fc},
	}
	if !reflect.DeepEqual(sel.TargetRanges, want) {
		t.Errorf("TargetRanges = %+v, want %+v", sel.TargetRanges, want)
	}
	if sel.ConcreteClasses != 3 {
		t.Errorf("ConcreteClasses = %d, want 3", sel.ConcreteClasses)
	}
}

// TestCoalescedRange is scenario S2: only the root defines foo; its
// subclasses inherit, producing one coalesced range.
func TestCoalescedRange(t *testing.T) {
	fa := method("foo", 0, 1, "A", "int")

	h := &chainHierarchy{
		maxID: 2,
		classes: []ClassInfo{
			{Name: "A", Super: -1, ConcreteID: concreteID(0), Members: []Member{ProcedureMember{Proc: fa}}},
			{Name: "B", Super: 0, ConcreteID: concreteID(1)},
			{Name: "C", Super: 0, ConcreteID: concreteID(2)},
		},
	}

	reg := NewSelectorRegistry(fixedCounts{})
	rb := NewTargetRangeBuilder(reg, nil)
	rb.Build(h)

	sel, err := reg.SelectorForTarget(fa)
	if err != nil {
		t.Fatalf("SelectorForTarget: %v", err)
	}
	want := []TargetRange{{Range: Range{0, 2}, Target: fa}}
	if !reflect.DeepEqual(sel.TargetRanges, want) {
		t.Errorf("TargetRanges = %+v, want %+v", sel.TargetRanges, want)
	}
}

// TestAbstractParent is scenario S3: an abstract root declares foo with
// no concrete implementation; only the concrete subclasses appear in the
// target ranges.
func TestAbstractParent(t *testing.T) {
	fa := abstractMethod("foo", 1, "A", "int")
	fb := method("foo", 1, 1, "B", "int")
	fc := method("foo", 2, 1, "C", "int")

	h := &chainHierarchy{
		maxID: 2,
		classes: []ClassInfo{
			{Name: "A", Super: -1, Members: []Member{ProcedureMember{Proc: fa}}},
			{Name: "B", Super: 0, ConcreteID: concreteID(1), Members: []Member{ProcedureMember{Proc: fb}}},
			{Name: "C", Super: 0, ConcreteID: concreteID(2), Members: []Member{ProcedureMember{Proc: fc}}},
		},
	}

	reg := NewSelectorRegistry(fixedCounts{})
	rb := NewTargetRangeBuilder(reg, nil)
	rb.Build(h)

	sel, err := reg.SelectorForTarget(fb)
	if err != nil {
		t.Fatalf("SelectorForTarget: %v", err)
	}
	want := []TargetRange{
		{Range: Range{1, 1}, Target: fb},
		{Range: Range{2, 2}, Target: fc},
	}
	if !reflect.DeepEqual(sel.TargetRanges, want) {
		t.Errorf("TargetRanges = %+v, want %+v", sel.TargetRanges, want)
	}
}

// TestAbstractDoesNotOverwriteInherited verifies that an abstract
// override in a subclass does not shadow a concrete target inherited
// from its superclass (spec §4.2 step 2: "insert only if no entry
// exists").
func TestAbstractDoesNotOverwriteInherited(t *testing.T) {
	fa := method("foo", 0, 1, "A", "int")
	abstractAgain := abstractMethod("foo", 1, "B", "int")

	h := &chainHierarchy{
		maxID: 1,
		classes: []ClassInfo{
			{Name: "A", Super: -1, ConcreteID: concreteID(0), Members: []Member{ProcedureMember{Proc: fa}}},
			{Name: "B", Super: 0, ConcreteID: concreteID(1), Members: []Member{ProcedureMember{Proc: abstractAgain}}},
		},
	}

	reg := NewSelectorRegistry(fixedCounts{})
	rb := NewTargetRangeBuilder(reg, nil)
	rb.Build(h)

	sel, _ := reg.SelectorForTarget(fa)
	want := []TargetRange{{Range: Range{0, 1}, Target: fa}}
	if !reflect.DeepEqual(sel.TargetRanges, want) {
		t.Errorf("TargetRanges = %+v, want %+v", sel.TargetRanges, want)
	}
}

// TestWasmBaseClassStartsEmpty verifies that the special low-level base
// class never inherits its superclass's selector map.
func TestWasmBaseClassStartsEmpty(t *testing.T) {
	finherited := method("foo", 0, 1, "Root", "int")
	fbase := method("bar", 1, 2, "Base", "int")

	h := &chainHierarchy{
		maxID: 1,
		classes: []ClassInfo{
			{Name: "Root", Super: -1, ConcreteID: concreteID(0), Members: []Member{ProcedureMember{Proc: finherited}}},
			{Name: "Base", Super: 0, ConcreteID: concreteID(1), IsWasmBase: true, Members: []Member{ProcedureMember{Proc: fbase}}},
		},
	}

	reg := NewSelectorRegistry(fixedCounts{})
	rb := NewTargetRangeBuilder(reg, nil)
	rb.Build(h)

	sel, err := reg.SelectorForTarget(finherited)
	if err != nil {
		t.Fatalf("SelectorForTarget: %v", err)
	}
	want := []TargetRange{{Range: Range{0, 0}, Target: finherited}}
	if !reflect.DeepEqual(sel.TargetRanges, want) {
		t.Errorf("TargetRanges = %+v, want %+v (Base should not inherit Root's foo)", sel.TargetRanges, want)
	}
}

// TestFieldContributesGetterAndSetter verifies that a mutable field
// creates two distinct selectors.
func TestFieldContributesGetterAndSetter(t *testing.T) {
	getter := &testRef{name: "x", enclosing: 0, getter: true, getterSel: 10, sig: MemberSignature{Receiver: "A", Result: "int"}}
	setter := &testRef{name: "x", enclosing: 0, setter: true, methodSel: 11, params: ParameterInfo{PositionalCount: 1}, sig: MemberSignature{Receiver: "A", Positional: []SourceType{"int"}}}

	h := &chainHierarchy{
		maxID: 0,
		classes: []ClassInfo{
			{Name: "A", Super: -1, ConcreteID: concreteID(0), Members: []Member{FieldMember{Getter: getter, Setter: setter}}},
		},
	}

	reg := NewSelectorRegistry(fixedCounts{})
	rb := NewTargetRangeBuilder(reg, nil)
	rb.Build(h)

	gsel, err := reg.SelectorForTarget(getter)
	if err != nil || gsel.Kind != KindGetter {
		t.Fatalf("getter selector = %+v, err = %v", gsel, err)
	}
	ssel, err := reg.SelectorForTarget(setter)
	if err != nil || ssel.Kind != KindSetter {
		t.Fatalf("setter selector = %+v, err = %v", ssel, err)
	}
	if gsel.ID == ssel.ID {
		t.Errorf("getter and setter selectors share an id %d", gsel.ID)
	}
}
