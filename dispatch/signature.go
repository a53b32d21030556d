// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

// EqualityOperatorName is the selector name spec §4.3 singles out: its
// right-hand operand slot is always non-nullable, regardless of what the
// ordinary upper-bound computation would produce.
const EqualityOperatorName = "=="

// SignatureSynthesizer computes the uniform call signature for a
// selector by taking a structural least upper bound across all of its
// distinct target signatures (spec §4.3, C4).
type SignatureSynthesizer struct {
	lattice TypeLattice
}

// NewSignatureSynthesizer returns a synthesizer that translates
// source-level types through lattice.
func NewSignatureSynthesizer(lattice TypeLattice) *SignatureSynthesizer {
	return &SignatureSynthesizer{lattice: lattice}
}

// Compute synthesizes and stores sel.signature. It must run exactly once
// per selector, strictly after sel.TargetRanges is finalized (spec
// §4.4); calling it twice, or before TargetRangeBuilder has finished,
// is a StructuralAssertion fault.
func (s *SignatureSynthesizer) Compute(sel *SelectorInfo) {
	if !sel.rangesFinalized {
		fail(StructuralAssertion, "selector %d (%s): signature computed before target ranges were finalized", sel.ID, sel.Name)
	}
	if sel.signatureComputed {
		fail(StructuralAssertion, "selector %d (%s): signature computed more than once", sel.ID, sel.Name)
	}

	targets := distinctTargets(sel.TargetRanges)

	ft := FunctionType{TypeParamCount: sel.ParamInfo.TypeParamCount}
	ft.Receiver = s.receiverType(targets)

	if sel.Kind != KindSetter {
		ft.Results = []ValueType{s.resultType(targets)}
	}

	if sel.ParamInfo.PositionalCount > 0 {
		ft.Positional = make([]Param, sel.ParamInfo.PositionalCount)
		for i := range ft.Positional {
			ft.Positional[i] = s.positionalSlot(targets, sel, i)
		}
	}

	if len(sel.ParamInfo.NamedIndex) > 0 {
		ft.Named = make(map[string]Param, len(sel.ParamInfo.NamedIndex))
		for name := range sel.ParamInfo.NamedIndex {
			ft.Named[name] = s.namedSlot(targets, sel, name)
		}
	}

	if sel.Name == EqualityOperatorName && len(ft.Positional) > 0 {
		ft.Positional[0].Type = ft.Positional[0].Type.WithNullable(false)
	}

	sel.signature = ft
	sel.signatureComputed = true
}

func distinctTargets(ranges []TargetRange) []Reference {
	seen := make(map[Reference]bool, len(ranges))
	var out []Reference
	for _, r := range ranges {
		if !seen[r.Target] {
			seen[r.Target] = true
			out = append(out, r.Target)
		}
	}
	return out
}

// receiverType is the non-nullable join of every target's enclosing
// class instance type (spec §4.3, slot 0).
func (s *SignatureSynthesizer) receiverType(targets []Reference) ValueType {
	if len(targets) == 0 {
		return s.lattice.TopNullable().WithNullable(false)
	}
	types := make([]ValueType, len(targets))
	for i, t := range targets {
		types[i] = s.lattice.TranslateType(t.Signature().Receiver)
	}
	return upperBound(types, false, s.lattice).WithNullable(false)
}

// resultType joins every target's return type, padding targets that
// report no return with the top nullable type (spec §4.3).
func (s *SignatureSynthesizer) resultType(targets []Reference) ValueType {
	var types []ValueType
	for _, t := range targets {
		if rt := t.Signature().Result; rt != nil {
			types = append(types, s.lattice.TranslateType(rt))
		} else {
			types = append(types, s.lattice.TopNullable())
		}
	}
	return upperBound(types, false, s.lattice)
}

func (s *SignatureSynthesizer) positionalSlot(targets []Reference, sel *SelectorInfo, i int) Param {
	var types []ValueType
	for _, t := range targets {
		pos := t.Signature().Positional
		if i < len(pos) {
			types = append(types, s.lattice.TranslateType(pos[i]))
		}
	}
	ensureBoxed := sel.ParamInfo.DefaultSentinel[positionalSlotKey(i)]
	return Param{Type: upperBound(types, ensureBoxed, s.lattice), EnsureBoxed: ensureBoxed}
}

func (s *SignatureSynthesizer) namedSlot(targets []Reference, sel *SelectorInfo, name string) Param {
	var types []ValueType
	for _, t := range targets {
		named := t.Signature().Named
		if named == nil {
			continue
		}
		if st, ok := named[name]; ok {
			types = append(types, s.lattice.TranslateType(st))
		}
	}
	ensureBoxed := sel.ParamInfo.DefaultSentinel[name]
	return Param{Type: upperBound(types, ensureBoxed, s.lattice), EnsureBoxed: ensureBoxed}
}

// upperBound computes the per-slot least upper bound of a set of target
// value types (spec §4.3):
//
//   - no targets supply the slot: the top nullable type;
//   - exactly one target, an unboxed primitive, and no sentinel boxing
//     required: that primitive type, unchanged;
//   - otherwise: box every primitive, then walk the deeper struct heap
//     types up their super-chain until all remaining candidates have
//     equal depth, then walk all of them in lockstep until only one
//     remains. Nullability is the OR across all inputs.
func upperBound(types []ValueType, ensureBoxed bool, lattice TypeLattice) ValueType {
	if len(types) == 0 {
		return lattice.TopNullable()
	}
	if len(types) == 1 && types[0].IsPrimitive() && !ensureBoxed {
		return types[0]
	}

	nullable := false
	boxed := make([]ValueType, len(types))
	for i, t := range types {
		if t.IsNullable() {
			nullable = true
		}
		if t.IsPrimitive() {
			t = lattice.BoxedStructFor(t)
		}
		// Nullability is reapplied once at the end, so candidates that
		// differ only in nullability must still dedupe during the walk.
		boxed[i] = t.WithNullable(false)
	}

	cur := dedupeValueTypes(boxed)
	for len(cur) > 1 {
		maxDepth := 0
		for _, t := range cur {
			if d := lattice.StructDepth(t); d > maxDepth {
				maxDepth = d
			}
		}
		if maxDepth == 0 {
			// Every candidate is already at the top of the lattice and
			// they still differ: there is no common named supertype.
			return lattice.TopNullable().WithNullable(nullable)
		}
		next := make([]ValueType, len(cur))
		for i, t := range cur {
			if lattice.StructDepth(t) == maxDepth {
				t = lattice.SuperTypeOf(t)
			}
			next[i] = t
		}
		cur = dedupeValueTypes(next)
	}
	return cur[0].WithNullable(nullable)
}

func dedupeValueTypes(types []ValueType) []ValueType {
	var out []ValueType
	for _, t := range types {
		dup := false
		for _, o := range out {
			if t.Equal(o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}
