// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"go/types"

	"github.com/vtablec/vtablec/dispatch"
)

// selectorTable interns member names into dispatch.SelectorIDs, mirroring
// the front end's tableSelectorMetadata (spec §6): getters/tear-offs and
// methods/setters are deliberately separate id spaces, matching
// SelectorRegistry.selectorIDFor's own bucket split.
type selectorTable struct {
	methodIDs map[string]dispatch.SelectorID
	getterIDs map[string]dispatch.SelectorID
	nextID    dispatch.SelectorID

	// dynamicCount counts, per selector id (getter or method-or-setter —
	// the two buckets never collide, since both draw from the same
	// nextID counter), how many distinct concrete classes contribute a
	// non-abstract override. A selector implemented by more than one
	// concrete class is treated as reachable through a polymorphic
	// (interface-shaped) call, the closest analogue this driver has to
	// "called dynamically" without reconstructing real interface call
	// sites.
	dynamicCount map[dispatch.SelectorID]int
}

func newSelectorTable() *selectorTable {
	return &selectorTable{
		methodIDs:    make(map[string]dispatch.SelectorID),
		getterIDs:    make(map[string]dispatch.SelectorID),
		dynamicCount: make(map[dispatch.SelectorID]int),
	}
}

func (s *selectorTable) internMethod(name string) dispatch.SelectorID {
	if id, ok := s.methodIDs[name]; ok {
		return id
	}
	id := s.nextID
	s.nextID++
	s.methodIDs[name] = id
	return id
}

func (s *selectorTable) internGetter(name string) dispatch.SelectorID {
	if id, ok := s.getterIDs[name]; ok {
		return id
	}
	id := s.nextID
	s.nextID++
	s.getterIDs[name] = id
	return id
}

func (s *selectorTable) markConcrete(id dispatch.SelectorID) {
	s.dynamicCount[id]++
}

func (s *selectorTable) isDynamic(id dispatch.SelectorID) bool {
	return s.dynamicCount[id] > 1
}

// sourceSignature converts a *types.Func's *types.Signature into
// dispatch.MemberSignature. The receiver slot carries the enclosing
// class's named type, not the receiver's pointer-or-value form: the
// dispatch core only ever joins and compares receiver types structurally.
func sourceSignature(recv types.Type, sig *types.Signature) dispatch.MemberSignature {
	ms := dispatch.MemberSignature{Receiver: recv}
	for i := 0; i < sig.Params().Len(); i++ {
		ms.Positional = append(ms.Positional, sig.Params().At(i).Type())
	}
	if sig.Results().Len() > 0 {
		ms.Result = sig.Results().At(0).Type()
	}
	return ms
}

func parameterShape(sig *types.Signature) dispatch.ParameterInfo {
	return dispatch.ParameterInfo{PositionalCount: sig.Params().Len()}
}

// procedureRef is a dispatch.Reference for an exported method.
type procedureRef struct {
	class *class
	fn    *types.Func
	sel   *selectorTable
	id    dispatch.SelectorID
}

func newProcedureMember(c *class, fn *types.Func, sel *selectorTable) dispatch.Member {
	id := sel.internMethod(fn.Name())
	if c.instantiated {
		sel.markConcrete(id)
	}
	return dispatch.ProcedureMember{Proc: &procedureRef{class: c, fn: fn, sel: sel, id: id}}
}

func (r *procedureRef) IsGetter() bool  { return false }
func (r *procedureRef) IsSetter() bool  { return false }
func (r *procedureRef) IsTearOff() bool { return false }

// IsAbstract reports whether this method's declaring class is never
// instantiated: the closed-world analogue of an abstract override,
// since Go has no explicit "abstract method" declaration.
func (r *procedureRef) IsAbstract() bool { return !r.class.instantiated }

func (r *procedureRef) EnclosingClassID() dispatch.ClassID {
	return r.class.id
}

func (r *procedureRef) MemberName() string { return r.fn.Name() }

func (r *procedureRef) ParameterShape() dispatch.ParameterInfo {
	return parameterShape(r.fn.Type().(*types.Signature))
}

func (r *procedureRef) Signature() dispatch.MemberSignature {
	return sourceSignature(r.class.named, r.fn.Type().(*types.Signature))
}

func (r *procedureRef) GetterSelectorID() dispatch.SelectorID         { return 0 }
func (r *procedureRef) MethodOrSetterSelectorID() dispatch.SelectorID { return r.id }

func (r *procedureRef) CalledDynamically() bool { return r.sel.isDynamic(r.id) }
func (r *procedureRef) HasTearOffUses() bool    { return false }
func (r *procedureRef) HasNonThisUses() bool    { return false }

// StaticDispatchPragma has no source-level equivalent in this driver;
// every call is treated as requiring the full dynamic dispatch path.
func (r *procedureRef) StaticDispatchPragma() bool { return false }

func (r *procedureRef) IsNoSuchMethodHook() bool       { return false }
func (r *procedureRef) EnclosingClassIsWasmBase() bool { return false }

// fieldGetterRef and fieldSetterRef are the two dispatch.Reference
// values a mutable exported field contributes (spec §4.1's field
// expansion).
type fieldGetterRef struct {
	class *class
	field *types.Var
	sel   *selectorTable
	id    dispatch.SelectorID
}

type fieldSetterRef struct {
	class *class
	field *types.Var
	sel   *selectorTable
	id    dispatch.SelectorID
}

func newFieldMember(c *class, f *types.Var, sel *selectorTable) dispatch.Member {
	gid := sel.internGetter(f.Name())
	sid := sel.internMethod(f.Name())
	if c.instantiated {
		sel.markConcrete(gid)
		sel.markConcrete(sid)
	}
	return dispatch.FieldMember{
		Getter: &fieldGetterRef{class: c, field: f, sel: sel, id: gid},
		Setter: &fieldSetterRef{class: c, field: f, sel: sel, id: sid},
	}
}

func (r *fieldGetterRef) IsGetter() bool                    { return true }
func (r *fieldGetterRef) IsSetter() bool                    { return false }
func (r *fieldGetterRef) IsTearOff() bool                   { return false }
func (r *fieldGetterRef) IsAbstract() bool                  { return !r.class.instantiated }
func (r *fieldGetterRef) EnclosingClassID() dispatch.ClassID { return r.class.id }
func (r *fieldGetterRef) MemberName() string                { return r.field.Name() }
func (r *fieldGetterRef) ParameterShape() dispatch.ParameterInfo {
	return dispatch.ParameterInfo{}
}
func (r *fieldGetterRef) Signature() dispatch.MemberSignature {
	return dispatch.MemberSignature{Receiver: r.class.named, Result: r.field.Type()}
}
func (r *fieldGetterRef) GetterSelectorID() dispatch.SelectorID         { return r.id }
func (r *fieldGetterRef) MethodOrSetterSelectorID() dispatch.SelectorID { return 0 }
func (r *fieldGetterRef) CalledDynamically() bool                      { return r.sel.isDynamic(r.id) }
func (r *fieldGetterRef) HasTearOffUses() bool                         { return false }
func (r *fieldGetterRef) HasNonThisUses() bool                         { return false }
func (r *fieldGetterRef) StaticDispatchPragma() bool                   { return false }
func (r *fieldGetterRef) IsNoSuchMethodHook() bool                     { return false }
func (r *fieldGetterRef) EnclosingClassIsWasmBase() bool               { return false }

func (r *fieldSetterRef) IsGetter() bool                    { return false }
func (r *fieldSetterRef) IsSetter() bool                    { return true }
func (r *fieldSetterRef) IsTearOff() bool                   { return false }
func (r *fieldSetterRef) IsAbstract() bool                  { return !r.class.instantiated }
func (r *fieldSetterRef) EnclosingClassID() dispatch.ClassID { return r.class.id }
func (r *fieldSetterRef) MemberName() string                { return r.field.Name() }
func (r *fieldSetterRef) ParameterShape() dispatch.ParameterInfo {
	return dispatch.ParameterInfo{PositionalCount: 1}
}
func (r *fieldSetterRef) Signature() dispatch.MemberSignature {
	return dispatch.MemberSignature{Receiver: r.class.named, Positional: []dispatch.SourceType{r.field.Type()}}
}
func (r *fieldSetterRef) GetterSelectorID() dispatch.SelectorID         { return 0 }
func (r *fieldSetterRef) MethodOrSetterSelectorID() dispatch.SelectorID { return r.id }
func (r *fieldSetterRef) CalledDynamically() bool                      { return r.sel.isDynamic(r.id) }
func (r *fieldSetterRef) HasTearOffUses() bool                         { return false }
func (r *fieldSetterRef) HasNonThisUses() bool                         { return false }
func (r *fieldSetterRef) StaticDispatchPragma() bool                   { return false }
func (r *fieldSetterRef) IsNoSuchMethodHook() bool                     { return false }
func (r *fieldSetterRef) EnclosingClassIsWasmBase() bool               { return false }
