// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"sort"

	"golang.org/x/xerrors"
)

// CallCounts supplies the front end's per-selector call-site counts
// (tableSelectorMetadata, indexed by selector id; spec §6). A selector
// with CallCount 0 is statically unreachable.
type CallCounts interface {
	CallCount(id SelectorID) uint32
}

// SelectorRegistry interns SelectorInfo by selector id, merges parameter
// metadata and usage flags across targets, and indexes selectors by
// member name for dynamic dispatch (spec §4.1, C3).
type SelectorRegistry struct {
	callCounts CallCounts

	byID  map[SelectorID]*SelectorInfo
	order []SelectorID // creation order, for All()

	dynamicGetters map[string]map[SelectorID]*SelectorInfo
	dynamicSetters map[string]map[SelectorID]*SelectorInfo
	dynamicMethods map[string]map[SelectorID]*SelectorInfo
}

// NewSelectorRegistry returns an empty registry backed by callCounts.
func NewSelectorRegistry(callCounts CallCounts) *SelectorRegistry {
	return &SelectorRegistry{
		callCounts:     callCounts,
		byID:           make(map[SelectorID]*SelectorInfo),
		dynamicGetters: make(map[string]map[SelectorID]*SelectorInfo),
		dynamicSetters: make(map[string]map[SelectorID]*SelectorInfo),
		dynamicMethods: make(map[string]map[SelectorID]*SelectorInfo),
	}
}

func (r *SelectorRegistry) selectorIDFor(ref Reference) SelectorID {
	if ref.IsGetter() || ref.IsTearOff() {
		return ref.GetterSelectorID()
	}
	return ref.MethodOrSetterSelectorID()
}

func kindFor(ref Reference) SelectorKind {
	switch {
	case ref.IsSetter():
		return KindSetter
	case ref.IsGetter(), ref.IsTearOff():
		return KindGetter
	default:
		return KindMethod
	}
}

// GetOrCreate derives ref's selector id from front-end metadata and
// returns its SelectorInfo, creating it the first time the id is seen
// and merging into it on every subsequent call (spec §4.1).
func (r *SelectorRegistry) GetOrCreate(ref Reference) *SelectorInfo {
	id := r.selectorIDFor(ref)
	kind := kindFor(ref)

	sel, ok := r.byID[id]
	if !ok {
		sel = &SelectorInfo{
			ID:             id,
			Name:           ref.MemberName(),
			Kind:           kind,
			CallCount:      r.callCounts.CallCount(id),
			ParamInfo:      ref.ParameterShape().Clone(),
			HasTearOffUses: ref.HasTearOffUses(),
			HasNonThisUses: ref.HasNonThisUses(),
			IsNoSuchMethod: ref.IsNoSuchMethodHook(),
		}
		r.byID[id] = sel
		r.order = append(r.order, id)
	} else {
		if (sel.Kind == KindSetter) != (kind == KindSetter) {
			fail(StructuralAssertion, "selector %d (%s): isSetter disagreement between merged targets", id, sel.Name)
		}
		sel.ParamInfo = sel.ParamInfo.Merge(ref.ParameterShape())
		sel.HasTearOffUses = sel.HasTearOffUses || ref.HasTearOffUses()
		sel.HasNonThisUses = sel.HasNonThisUses || ref.HasNonThisUses()
		sel.IsNoSuchMethod = sel.IsNoSuchMethod || ref.IsNoSuchMethodHook()
	}

	r.indexDynamic(ref, sel)
	return sel
}

// SelectorForTarget is a lookup-only variant of GetOrCreate: it fails
// with ErrUnknownSelector if ref's selector id was never created.
func (r *SelectorRegistry) SelectorForTarget(ref Reference) (*SelectorInfo, error) {
	id := r.selectorIDFor(ref)
	sel, ok := r.byID[id]
	if !ok {
		return nil, xerrors.Errorf("selector %d for member %q: %w", id, ref.MemberName(), ErrUnknownSelector)
	}
	return sel, nil
}

// All returns every interned selector, ordered by ascending id for
// determinism.
func (r *SelectorRegistry) All() []*SelectorInfo {
	out := make([]*SelectorInfo, 0, len(r.byID))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *SelectorRegistry) indexDynamic(ref Reference, sel *SelectorInfo) {
	if ref.EnclosingClassIsWasmBase() {
		return
	}
	if !ref.CalledDynamically() && ref.MemberName() != CallOperatorName {
		return
	}
	name := normalizeName(ref.MemberName())
	switch {
	case ref.IsGetter(), ref.IsTearOff():
		addDynamic(r.dynamicGetters, name, sel)
	case ref.IsSetter():
		addDynamic(r.dynamicSetters, name, sel)
	default:
		addDynamic(r.dynamicMethods, name, sel)
	}
}

func addDynamic(idx map[string]map[SelectorID]*SelectorInfo, name string, sel *SelectorInfo) {
	m, ok := idx[name]
	if !ok {
		m = make(map[SelectorID]*SelectorInfo)
		idx[name] = m
	}
	m[sel.ID] = sel
}

func sortedSelectors(m map[SelectorID]*SelectorInfo) []*SelectorInfo {
	out := make([]*SelectorInfo, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DynamicGetterSelectors returns the getter/tear-off selectors indexed
// under name, used by dynamic-call lowering.
func (r *SelectorRegistry) DynamicGetterSelectors(name string) []*SelectorInfo {
	return sortedSelectors(r.dynamicGetters[normalizeName(name)])
}

// DynamicSetterSelectors returns the setter selectors indexed under name.
func (r *SelectorRegistry) DynamicSetterSelectors(name string) []*SelectorInfo {
	return sortedSelectors(r.dynamicSetters[normalizeName(name)])
}

// DynamicMethodSelectors returns the method selectors indexed under name.
func (r *SelectorRegistry) DynamicMethodSelectors(name string) []*SelectorInfo {
	return sortedSelectors(r.dynamicMethods[normalizeName(name)])
}
