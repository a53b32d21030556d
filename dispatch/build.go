// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

// BuildOptions configures a Builder.
type BuildOptions struct {
	// WholeProgramSpecialization, when true, makes every selector's
	// StaticDispatchRanges equal to its TargetRanges outright (spec
	// §4.5): the compiler has already specialized every call site, so
	// nothing needs a table entry purely for polymorphism.
	WholeProgramSpecialization bool

	// Tracer optionally records phase-level progress. May be nil.
	Tracer *Tracer
}

// Builder runs the whole pipeline described in spec §2: it feeds a
// ClassHierarchy and TypeLattice through SelectorRegistry,
// TargetRangeBuilder, SignatureSynthesizer and RowDisplacementPacker and
// returns an immutable DispatchTable. A Builder is single-use.
type Builder struct {
	hierarchy ClassHierarchy
	lattice   TypeLattice
	counts    CallCounts
	opts      BuildOptions
}

// NewBuilder returns a Builder over hierarchy and lattice. counts
// supplies the front end's per-selector call counts.
func NewBuilder(hierarchy ClassHierarchy, lattice TypeLattice, counts CallCounts, opts BuildOptions) *Builder {
	return &Builder{hierarchy: hierarchy, lattice: lattice, counts: counts, opts: opts}
}

// Build runs the pipeline to completion and returns an immutable
// DispatchTable. It is single-threaded and non-suspending (spec §5): the
// hierarchy and lattice must not change while Build runs, and the
// returned table must not be read until Build returns.
//
// Any internal invariant violation (spec §7) is recovered here and
// returned as a *Fault; there is no partial or best-effort result in
// that case.
func (b *Builder) Build() (dt *DispatchTable, err error) {
	defer recoverFault(&err)

	registry := NewSelectorRegistry(b.counts)
	rangeBuilder := NewTargetRangeBuilder(registry, b.opts.Tracer)
	rangeBuilder.Build(b.hierarchy)

	synth := NewSignatureSynthesizer(b.lattice)
	selectors := registry.All()
	for _, sel := range selectors {
		b.computeStaticDispatchRanges(sel, rangeBuilder)
		synth.Compute(sel)
	}
	b.opts.Tracer.Phase("signatures: computed %d selectors", len(selectors))

	participating := make([]*SelectorInfo, 0, len(selectors))
	for _, sel := range selectors {
		if b.participates(sel) {
			participating = append(participating, sel)
		}
	}

	packer := NewRowDisplacementPacker(b.opts.Tracer)
	table := packer.Pack(participating)

	return &DispatchTable{
		registry: registry,
		table:    table,
	}, nil
}

// computeStaticDispatchRanges fills sel.StaticDispatchRanges per spec
// §4.5: if whole-program specialization is enabled, or the selector has
// a single range, it is the full TargetRanges; otherwise it is the
// subset of ranges whose target carries the static-dispatch pragma.
func (b *Builder) computeStaticDispatchRanges(sel *SelectorInfo, rb *TargetRangeBuilder) {
	if b.opts.WholeProgramSpecialization || len(sel.TargetRanges) == 1 {
		sel.StaticDispatchRanges = sel.TargetRanges
		return
	}
	var out []TargetRange
	for _, tr := range sel.TargetRanges {
		if rb.IsStaticDispatchPragma(tr.Target) {
			out = append(out, tr)
		}
	}
	sel.StaticDispatchRanges = out
}

// participates reports whether sel is selected into the packed table
// (spec §4.5 Selection): the noSuchMethod selector always is (dynamic
// call lowering may synthesize calls to it post-hoc, even with
// CallCount 0), otherwise only reachable, polymorphic, not-entirely-
// statically-dispatched selectors are.
func (b *Builder) participates(sel *SelectorInfo) bool {
	if sel.IsNoSuchMethod {
		return true
	}
	return sel.CallCount > 0 && len(sel.TargetRanges) > 1 && !sel.entirelyStaticallyDispatched()
}

// DispatchTable is the immutable result of Builder.Build (spec §3). Its
// selectors must not be mutated; downstream phases only read from it.
type DispatchTable struct {
	registry *SelectorRegistry
	table    []Reference
}

// SelectorByID returns the selector with the given id, if one was
// created during Build.
func (dt *DispatchTable) SelectorByID(id SelectorID) (*SelectorInfo, bool) {
	sel, err := dt.registry.SelectorForTarget(idOnlyReference{id})
	if err != nil {
		return nil, false
	}
	return sel, true
}

// idOnlyReference adapts a bare SelectorID to the minimal Reference
// surface SelectorForTarget needs (it only calls the selector-id
// predicates), so SelectorByID can reuse the registry's lookup path
// without a second id-keyed map.
type idOnlyReference struct{ id SelectorID }

func (r idOnlyReference) IsGetter() bool                       { return false }
func (r idOnlyReference) IsSetter() bool                       { return false }
func (r idOnlyReference) IsTearOff() bool                      { return false }
func (r idOnlyReference) IsAbstract() bool                     { return false }
func (r idOnlyReference) EnclosingClassID() ClassID            { return 0 }
func (r idOnlyReference) MemberName() string                   { return "" }
func (r idOnlyReference) ParameterShape() ParameterInfo        { return ParameterInfo{} }
func (r idOnlyReference) Signature() MemberSignature           { return MemberSignature{} }
func (r idOnlyReference) GetterSelectorID() SelectorID         { return 0 }
func (r idOnlyReference) MethodOrSetterSelectorID() SelectorID { return r.id }
func (r idOnlyReference) CalledDynamically() bool              { return false }
func (r idOnlyReference) HasTearOffUses() bool                 { return false }
func (r idOnlyReference) HasNonThisUses() bool                 { return false }
func (r idOnlyReference) StaticDispatchPragma() bool           { return false }
func (r idOnlyReference) IsNoSuchMethodHook() bool             { return false }
func (r idOnlyReference) EnclosingClassIsWasmBase() bool       { return false }

// DynamicGetterSelectors returns the getter/tear-off selectors reachable
// dynamically by name.
func (dt *DispatchTable) DynamicGetterSelectors(name string) []*SelectorInfo {
	return dt.registry.DynamicGetterSelectors(name)
}

// DynamicSetterSelectors returns the setter selectors reachable
// dynamically by name.
func (dt *DispatchTable) DynamicSetterSelectors(name string) []*SelectorInfo {
	return dt.registry.DynamicSetterSelectors(name)
}

// DynamicMethodSelectors returns the method selectors reachable
// dynamically by name.
func (dt *DispatchTable) DynamicMethodSelectors(name string) []*SelectorInfo {
	return dt.registry.DynamicMethodSelectors(name)
}

// Selectors returns every selector created during Build, ordered by
// ascending id.
func (dt *DispatchTable) Selectors() []*SelectorInfo {
	return dt.registry.All()
}

// Table returns the packed function table. Entries are nil at packing
// holes; module loading only affects which entries Emit resolves.
func (dt *DispatchTable) Table() []Reference {
	return dt.table
}

// Emit resolves the packed table into element assignments split between
// the main module and every other module's imported view. It must run
// after Build and after every function body has been registered with
// functions (spec §5 ordering guarantee 3).
func (dt *DispatchTable) Emit(functions Functions, resolver ModuleResolver) (*EmittedTable, error) {
	return TableEmitter{}.Emit(dt.table, functions, resolver)
}
