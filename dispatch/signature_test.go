// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "testing"

func buildSingleSelector(t *testing.T, h ClassHierarchy, counts CallCounts) (*SelectorInfo, *SelectorRegistry) {
	t.Helper()
	reg := NewSelectorRegistry(counts)
	rb := NewTargetRangeBuilder(reg, nil)
	rb.Build(h)
	all := reg.All()
	if len(all) != 1 {
		t.Fatalf("got %d selectors, want 1", len(all))
	}
	return all[0], reg
}

// TestEqualityOperatorForcesNonNullable is scenario S6: both targets of
// the == selector accept int; the synthesized right-hand slot must be
// non-nullable even if a target declared it nullable.
func TestEqualityOperatorForcesNonNullable(t *testing.T) {
	params := ParameterInfo{PositionalCount: 1}
	a := &testRef{
		name: "==", enclosing: 0, methodSel: 1, params: params,
		sig: MemberSignature{Receiver: "A", Positional: []SourceType{"int?"}, Result: "bool"},
	}
	b := &testRef{
		name: "==", enclosing: 1, methodSel: 1, params: params,
		sig: MemberSignature{Receiver: "B?", Positional: []SourceType{"int"}, Result: "bool"},
	}

	h := &chainHierarchy{
		maxID: 1,
		classes: []ClassInfo{
			{Name: "A", Super: -1, ConcreteID: concreteID(0), Members: []Member{ProcedureMember{Proc: a}}},
			{Name: "B", Super: -1, ConcreteID: concreteID(1), Members: []Member{ProcedureMember{Proc: b}}},
		},
	}

	sel, _ := buildSingleSelector(t, h, fixedCounts{})
	NewSignatureSynthesizer(newTestLattice()).Compute(sel)

	sig, ok := sel.Signature()
	if !ok {
		t.Fatal("signature not computed")
	}
	if len(sig.Positional) != 1 {
		t.Fatalf("Positional = %+v, want 1 slot", sig.Positional)
	}
	if sig.Positional[0].Type.IsNullable() {
		t.Errorf("Positional[0] = %v, want non-nullable", sig.Positional[0].Type)
	}
	if sig.Receiver.IsNullable() {
		t.Errorf("Receiver = %v, want non-nullable", sig.Receiver)
	}
}

// TestUpperBoundJoinsStructChain checks that two sibling struct types
// (Dog, Cat, both Animal) join to their common ancestor Animal.
func TestUpperBoundJoinsStructChain(t *testing.T) {
	fa := method("speak", 0, 1, "Dog", "Dog")
	fb := method("speak", 1, 1, "Cat", "Cat")

	h := &chainHierarchy{
		maxID: 1,
		classes: []ClassInfo{
			{Name: "Dog", Super: -1, ConcreteID: concreteID(0), Members: []Member{ProcedureMember{Proc: fa}}},
			{Name: "Cat", Super: -1, ConcreteID: concreteID(1), Members: []Member{ProcedureMember{Proc: fb}}},
		},
	}

	sel, _ := buildSingleSelector(t, h, fixedCounts{})
	NewSignatureSynthesizer(newTestLattice()).Compute(sel)

	sig, _ := sel.Signature()
	got := sig.Results[0].(testType).name
	if got != "Animal" {
		t.Errorf("joined result type = %q, want %q", got, "Animal")
	}
}

// TestUpperBoundSinglePrimitiveIsUnboxed checks the fast path: a single
// target, an unboxed primitive, no sentinel boxing, returns that
// primitive unchanged rather than its boxed struct form.
func TestUpperBoundSinglePrimitiveIsUnboxed(t *testing.T) {
	fa := method("count", 0, 1, "A", "int")
	h := &chainHierarchy{
		maxID: 0,
		classes: []ClassInfo{
			{Name: "A", Super: -1, ConcreteID: concreteID(0), Members: []Member{ProcedureMember{Proc: fa}}},
		},
	}

	sel, _ := buildSingleSelector(t, h, fixedCounts{})
	NewSignatureSynthesizer(newTestLattice()).Compute(sel)

	sig, _ := sel.Signature()
	got := sig.Results[0].(testType)
	if !got.primitive || got.name != "int" {
		t.Errorf("Results[0] = %+v, want unboxed int", got)
	}
}

func TestComputeSignatureTwicePanics(t *testing.T) {
	fa := method("foo", 0, 1, "A", "int")
	h := &chainHierarchy{
		maxID: 0,
		classes: []ClassInfo{
			{Name: "A", Super: -1, ConcreteID: concreteID(0), Members: []Member{ProcedureMember{Proc: fa}}},
		},
	}
	sel, _ := buildSingleSelector(t, h, fixedCounts{})
	synth := NewSignatureSynthesizer(newTestLattice())
	synth.Compute(sel)

	defer func() {
		r := recover()
		f, ok := r.(*Fault)
		if !ok || f.Kind != StructuralAssertion {
			t.Fatalf("recover() = %v, want a StructuralAssertion Fault", r)
		}
	}()
	synth.Compute(sel)
}

func TestComputeSignatureBeforeRangesFinalizedPanics(t *testing.T) {
	sel := &SelectorInfo{ID: 1, Name: "foo"}
	defer func() {
		r := recover()
		f, ok := r.(*Fault)
		if !ok || f.Kind != StructuralAssertion {
			t.Fatalf("recover() = %v, want a StructuralAssertion Fault", r)
		}
	}()
	NewSignatureSynthesizer(newTestLattice()).Compute(sel)
}
