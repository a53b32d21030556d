// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "sort"

// CallOperatorName is the source language's canonical callable-object
// operator. A member named CallOperatorName is always eligible for
// dynamic-method indexing, regardless of whether the front end marked it
// dynamically called (spec §4.1).
const CallOperatorName = "call"

// Reference is an opaque handle to a target member: a method body, an
// implicit field getter or setter, or a tear-off thunk. The core never
// inspects member bodies; it only calls the predicates below, which the
// front end is expected to answer from its own metadata tables
// (tableSelectorMetadata, procedureAttributesMetadata, pragmaLookup;
// spec §6).
//
// Reference values must be comparable with ==: TargetRangeBuilder relies
// on reference identity to detect whether two adjacent class-id entries
// share the same target when coalescing ranges.
type Reference interface {
	IsGetter() bool
	IsSetter() bool
	IsTearOff() bool
	IsAbstract() bool

	EnclosingClassID() ClassID
	MemberName() string
	ParameterShape() ParameterInfo
	Signature() MemberSignature

	// GetterSelectorID and MethodOrSetterSelectorID report the
	// front-end-assigned selector id this reference would use under
	// each bucket; SelectorRegistry picks whichever applies (spec
	// §4.1).
	GetterSelectorID() SelectorID
	MethodOrSetterSelectorID() SelectorID

	// CalledDynamically reports the front end's
	// getterCalledDynamically or methodOrSetterCalledDynamically flag,
	// whichever corresponds to this reference's own kind.
	CalledDynamically() bool
	HasTearOffUses() bool
	HasNonThisUses() bool

	// StaticDispatchPragma reports pragmaLookup(member,
	// "static-dispatch").
	StaticDispatchPragma() bool

	// IsNoSuchMethodHook reports whether this reference is the root
	// class's noSuchMethod override.
	IsNoSuchMethodHook() bool

	// EnclosingClassIsWasmBase reports whether the declaring class is
	// the special low-level base class excluded from dynamic indexing
	// (spec §4.1, §4.2). Because that class may itself be abstract and
	// thus carry no ClassID, this is asked of the reference directly
	// rather than derived from EnclosingClassID.
	EnclosingClassIsWasmBase() bool
}

// Member is the tagged variant of an instance member declared directly
// on a class: either a field (contributing a getter and an optional
// setter) or a procedure (contributing itself and an optional tear-off).
// See Design Notes §9.
type Member interface {
	isMember()
	// References returns the up-to-two Reference values this member
	// contributes to the dispatch table.
	References() []Reference
}

// FieldMember is a field. Setter is nil for a final (get-only) field.
type FieldMember struct {
	Getter Reference
	Setter Reference
}

func (FieldMember) isMember() {}

// References implements Member.
func (f FieldMember) References() []Reference {
	if f.Setter == nil {
		return []Reference{f.Getter}
	}
	return []Reference{f.Getter, f.Setter}
}

// ProcedureMember is a method, getter, setter, or operator declared as a
// procedure. TearOff is non-nil only when the front end marked the
// procedure as used via tear-off.
type ProcedureMember struct {
	Proc    Reference
	TearOff Reference
}

func (ProcedureMember) isMember() {}

// References implements Member.
func (p ProcedureMember) References() []Reference {
	if p.TearOff == nil {
		return []Reference{p.Proc}
	}
	return []Reference{p.Proc, p.TearOff}
}

// ClassInfo describes one class node in the super-first walk (spec §4.2,
// C2). Super is the index into ClassHierarchy.Classes() of the direct
// superclass, or -1 for the root. ConcreteID is nil for classes that are
// never instantiated (abstract classes, mixins, and the synthetic #Top
// class, which inherits Object's member set but contributes no class-id
// of its own; see SPEC_FULL.md).
type ClassInfo struct {
	Name       string
	Super      int
	ConcreteID *ClassID
	IsWasmBase bool
	Members    []Member
}

// ClassHierarchy is the external collaborator (C2) that supplies
// super-first class iteration and the dense concrete class-id numbering.
type ClassHierarchy interface {
	Classes() []ClassInfo
	MaxConcreteClassID() ClassID
}

// TargetRangeBuilder walks a ClassHierarchy assigning the innermost
// concrete override to each class-id and coalescing contiguous equal
// targets into ranges (spec §4.2, C5).
type TargetRangeBuilder struct {
	registry *SelectorRegistry
	tracer   *Tracer

	// staticPragma records, for every concrete Reference flagged with
	// the static-dispatch pragma, that it was so flagged. It is looked
	// up again per coalesced range; since coalescing only merges
	// identical references, one entry per distinct Reference suffices.
	staticPragma map[Reference]bool
}

// IsStaticDispatchPragma reports whether ref was flagged with the
// static-dispatch pragma during the walk. Used by Builder when computing
// StaticDispatchRanges (spec §4.5).
func (b *TargetRangeBuilder) IsStaticDispatchPragma(ref Reference) bool {
	return b.staticPragma[ref]
}

// NewTargetRangeBuilder returns a builder that interns selectors into
// registry as it walks.
func NewTargetRangeBuilder(registry *SelectorRegistry, tracer *Tracer) *TargetRangeBuilder {
	return &TargetRangeBuilder{
		registry:     registry,
		tracer:       tracer,
		staticPragma: make(map[Reference]bool),
	}
}

// classSelectors maps each selector id to the reference a class resolves
// it to, accumulated during the walk.
type classSelectors map[SelectorID]Reference

// Build walks h in super-first order, populating every selector's
// TargetRanges. It must run before any selector's signature is computed.
func (b *TargetRangeBuilder) Build(h ClassHierarchy) {
	classes := h.Classes()
	perNode := make([]classSelectors, len(classes))

	for i, c := range classes {
		var cur classSelectors
		if c.Super < 0 || c.IsWasmBase {
			cur = make(classSelectors)
		} else {
			cur = make(classSelectors, len(perNode[c.Super]))
			for id, ref := range perNode[c.Super] {
				cur[id] = ref
			}
		}

		for _, m := range c.Members {
			for _, ref := range m.References() {
				sel := b.registry.GetOrCreate(ref)
				if ref.IsAbstract() {
					if _, exists := cur[sel.ID]; !exists {
						cur[sel.ID] = ref
					}
					continue
				}
				cur[sel.ID] = ref
				if ref.StaticDispatchPragma() {
					b.staticPragma[ref] = true
				}
			}
		}

		perNode[i] = cur
	}

	if b.tracer != nil {
		b.tracer.Phase("target ranges: walked %d classes", len(classes))
	}

	b.coalesce(classes, perNode)
}

// coalesce emits (selector -> (classID, reference)) for every concrete
// class and every non-abstract entry in its map, then groups by
// selector, sorts by class-id, and merges adjacent entries sharing the
// same target reference.
func (b *TargetRangeBuilder) coalesce(classes []ClassInfo, perNode []classSelectors) {
	type rawEntry struct {
		classID uint32
		ref     Reference
	}
	bySelector := make(map[SelectorID][]rawEntry)

	for i, c := range classes {
		if c.ConcreteID == nil {
			continue
		}
		cid := uint32(*c.ConcreteID)
		for selID, ref := range perNode[i] {
			if ref.IsAbstract() {
				continue
			}
			bySelector[selID] = append(bySelector[selID], rawEntry{cid, ref})
		}
	}

	for selID, entries := range bySelector {
		sel, err := b.registry.SelectorForTarget(entries[0].ref)
		if err != nil {
			fail(StructuralAssertion, "selector %d: %v", selID, err)
		}

		sort.Slice(entries, func(i, j int) bool { return entries[i].classID < entries[j].classID })

		var ranges []TargetRange
		for _, e := range entries {
			if n := len(ranges); n > 0 {
				last := &ranges[n-1]
				if last.Target == e.ref && last.Range.End+1 == e.classID {
					last.Range.End = e.classID
					continue
				}
				if last.Range.End >= e.classID {
					fail(StructuralAssertion, "selector %d: class-id ranges overlap at %d", selID, e.classID)
				}
			}
			ranges = append(ranges, TargetRange{Range: Range{Start: e.classID, End: e.classID}, Target: e.ref})
		}

		sel.TargetRanges = ranges
		var n uint32
		for _, r := range ranges {
			n += r.Range.Len()
		}
		sel.ConcreteClasses = n
		sel.rangesFinalized = true
	}

	// Selectors with no concrete implementor still need rangesFinalized
	// set so SignatureSynthesizer can run over them (e.g. an abstract
	// selector reachable only through noSuchMethod dispatch).
	for _, sel := range b.registry.All() {
		sel.rangesFinalized = true
	}
}
