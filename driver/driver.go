// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/vtablec/vtablec/dispatch"
)

// Build runs dispatch.NewBuilder over the loaded program and returns the
// resulting DispatchTable. opts lets callers enable whole-program
// specialization or attach a tracer, same as dispatch.Builder itself.
func (p *Program) Build(opts dispatch.BuildOptions) (*dispatch.DispatchTable, error) {
	return dispatch.NewBuilder(p.Hierarchy, p.Lattice, p.Counts, opts).Build()
}

// Emit resolves dt's packed table using this program's loaded object
// graph as the Functions/ModuleResolver collaborators (spec §4.5, C7).
func (p *Program) Emit(dt *dispatch.DispatchTable) (*dispatch.EmittedTable, error) {
	fr := &functionResolver{p}
	resolver := struct {
		*functionResolver
		*ModuleSet
	}{fr, p.modules}
	return dt.Emit(fr, resolver)
}

// enclosingNamed recovers the declaring named type from one of this
// package's concrete Reference implementations.
func enclosingNamed(ref dispatch.Reference) *types.Named {
	switch r := ref.(type) {
	case *procedureRef:
		return r.class.named
	case *fieldGetterRef:
		return r.class.named
	case *fieldSetterRef:
		return r.class.named
	default:
		return nil
	}
}

// functionResolver adapts a loaded Program to dispatch.Functions: every
// reference in a closed-world go/packages load already names a fully
// type-checked object, so resolution never fails (spec §4.5's
// deferred-module case has no analogue here; see ModuleLoaded below).
type functionResolver struct {
	prog *Program
}

func (f *functionResolver) GetExistingFunction(ref dispatch.Reference) (dispatch.FuncObject, bool) {
	switch r := ref.(type) {
	case *procedureRef:
		return r.fn, true
	case *fieldGetterRef:
		return r.field, true
	case *fieldSetterRef:
		return r.field, true
	default:
		return nil, false
	}
}

// ModuleForReference returns the *packages.Package declaring ref's
// enclosing class, used as the opaque dispatch.Module handle.
func (f *functionResolver) ModuleForReference(ref dispatch.Reference) dispatch.Module {
	named := enclosingNamed(ref)
	if named == nil {
		return nil
	}
	return f.prog.pkgByObj[named.Obj()]
}

func (f *functionResolver) ModuleLoaded(dispatch.Module) bool { return true }

// IsMainModule implements the ModuleResolver half ModuleSet owns: mod is
// always a *packages.Package as produced by functionResolver above.
func (m *ModuleSet) IsMainModule(mod dispatch.Module) bool {
	pkg, ok := mod.(*packages.Package)
	return ok && pkg != nil && pkg.Module != nil && pkg.Module.Path == m.mainPath
}
