// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "fmt"

// ClassID identifies a concrete class. Ids are dense over
// [0, MaxConcreteClassID].
type ClassID uint32

// SelectorID identifies an equivalence class of dispatchable members, as
// assigned by the front end.
type SelectorID uint32

// SourceType is an opaque handle to a source-level type. The core never
// inspects it directly; it is only ever passed to a TypeLattice.
type SourceType = any

// Range is an inclusive class-id interval.
type Range struct {
	Start, End uint32
}

// Len reports the number of class ids covered by r.
func (r Range) Len() uint32 { return r.End - r.Start + 1 }

// Contains reports whether c falls within r.
func (r Range) Contains(c uint32) bool { return c >= r.Start && c <= r.End }

// SelectorKind classifies the member that first created a selector.
type SelectorKind int

const (
	KindGetter SelectorKind = iota
	KindSetter
	KindMethod
)

func (k SelectorKind) String() string {
	switch k {
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	case KindMethod:
		return "method"
	default:
		return fmt.Sprintf("SelectorKind(%d)", int(k))
	}
}

// ParameterInfo is the normalized parameter schema shared by every target
// of a selector: positional arity, a named-parameter name-to-index map,
// type-parameter arity, and a per-slot default-value-sentinel flag.
//
// Slots are keyed by positionalSlotKey(i) for positional index i, or by
// the parameter name itself for named slots, so that Merge never has to
// renumber an existing slot when an arity or name set grows.
type ParameterInfo struct {
	PositionalCount int
	NamedIndex      map[string]int
	TypeParamCount  int
	DefaultSentinel map[string]bool
}

// positionalSlotKey returns the DefaultSentinel key for positional slot i.
func positionalSlotKey(i int) string { return fmt.Sprintf("p%d", i) }

// Clone returns a deep copy of p.
func (p ParameterInfo) Clone() ParameterInfo {
	named := make(map[string]int, len(p.NamedIndex))
	for k, v := range p.NamedIndex {
		named[k] = v
	}
	sentinel := make(map[string]bool, len(p.DefaultSentinel))
	for k, v := range p.DefaultSentinel {
		sentinel[k] = v
	}
	return ParameterInfo{
		PositionalCount: p.PositionalCount,
		NamedIndex:      named,
		TypeParamCount:  p.TypeParamCount,
		DefaultSentinel: sentinel,
	}
}

// Merge widens arities and unions the name map; see spec §3. A slot's
// sentinel flag becomes true if either side requires a default-value
// sentinel in that slot.
func (p ParameterInfo) Merge(other ParameterInfo) ParameterInfo {
	out := p.Clone()
	if other.PositionalCount > out.PositionalCount {
		out.PositionalCount = other.PositionalCount
	}
	if other.TypeParamCount > out.TypeParamCount {
		out.TypeParamCount = other.TypeParamCount
	}
	for name, idx := range other.NamedIndex {
		if _, ok := out.NamedIndex[name]; !ok {
			out.NamedIndex[name] = idx
		}
	}
	for slot, sentinel := range other.DefaultSentinel {
		if sentinel {
			out.DefaultSentinel[slot] = true
		}
	}
	return out
}

// MemberSignature carries the source-level types a Reference needs for
// signature synthesis. Result is nil for setters.
type MemberSignature struct {
	Receiver   SourceType
	Positional []SourceType
	Named      map[string]SourceType
	Result     SourceType
}

// TargetRange pairs a class-id range with the member that implements a
// selector for every class in that range.
type TargetRange struct {
	Range  Range
	Target Reference
}

// SelectorInfo is the central per-selector record. Its fields are
// mutable during Builder.Build and must not be written to afterwards;
// see the package doc and Design Notes on two-phase construction.
type SelectorInfo struct {
	ID        SelectorID
	Name      string
	Kind      SelectorKind
	CallCount uint32

	ParamInfo      ParameterInfo
	HasTearOffUses bool
	HasNonThisUses bool
	IsNoSuchMethod bool

	TargetRanges         []TargetRange
	StaticDispatchRanges []TargetRange
	ConcreteClasses      uint32

	// Participates records whether this selector received a table
	// offset (set by RowDisplacementPacker). It is diagnostic only;
	// the authoritative signal is Offset != nil.
	Participates bool
	Offset       *uint32

	signature         FunctionType
	signatureComputed bool
	rangesFinalized   bool
}

// Signature returns the selector's uniform call signature and whether it
// has been computed yet. Reading Signature before it is computed is a
// caller error; see spec §4.4.
func (s *SelectorInfo) Signature() (FunctionType, bool) {
	return s.signature, s.signatureComputed
}

// entirelyStaticallyDispatched reports whether every target range of s
// is also present in StaticDispatchRanges (spec §4.5).
func (s *SelectorInfo) entirelyStaticallyDispatched() bool {
	return len(s.StaticDispatchRanges) == len(s.TargetRanges)
}
