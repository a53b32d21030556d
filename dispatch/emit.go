// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "golang.org/x/xerrors"

// Module is an opaque handle to a target module. The core never
// inspects it beyond the identity comparisons ModuleResolver performs.
type Module interface{}

// FuncObject is an opaque handle to a resolved target function.
type FuncObject interface{}

// Functions is the external collaborator that resolves a Reference to
// its already-built function object (spec §6).
type Functions interface {
	GetExistingFunction(ref Reference) (FuncObject, bool)
}

// ModuleResolver answers which module a reference's function lives in,
// whether that module is the main module, and whether it has been
// loaded yet (spec §4.5: a nil function-object result is only sound for
// a deferred, not-yet-loaded module).
type ModuleResolver interface {
	ModuleForReference(ref Reference) Module
	IsMainModule(m Module) bool
	ModuleLoaded(m Module) bool
}

// EmittedTable is the set of element writes TableEmitter computed: one
// function table defined in the main module, plus an imported view per
// other module (spec §4.5 Emission).
type EmittedTable struct {
	Length int
	// MainModule maps table index to the function object written into
	// the table defined in the main module.
	MainModule map[int]FuncObject
	// Imported maps a non-main module to the set of table indices
	// written into that module's imported view of the table.
	Imported map[Module]map[int]FuncObject
}

// TableEmitter materializes a packed table into element assignments,
// splitting them between the table defined in the main module and the
// imported views of that table in every other module (spec §4.5
// Emission, C7).
type TableEmitter struct{}

// Emit resolves every non-nil entry of table through functions and
// resolver. A reference whose function cannot be resolved is fatal
// unless its module has not been loaded yet, in which case the slot is
// left empty: calls can only reach an index whose class has already
// been instantiated, which in turn loads that module (spec §4.5).
func (TableEmitter) Emit(table []Reference, functions Functions, resolver ModuleResolver) (*EmittedTable, error) {
	out := &EmittedTable{
		Length:     len(table),
		MainModule: make(map[int]FuncObject),
		Imported:   make(map[Module]map[int]FuncObject),
	}

	for i, ref := range table {
		if ref == nil {
			continue
		}
		fn, ok := functions.GetExistingFunction(ref)
		if !ok {
			mod := resolver.ModuleForReference(ref)
			if resolver.ModuleLoaded(mod) {
				return nil, xerrors.Errorf("table index %d, member %q: %w", i, ref.MemberName(), unresolvedTargetError{})
			}
			continue
		}

		mod := resolver.ModuleForReference(ref)
		if resolver.IsMainModule(mod) {
			out.MainModule[i] = fn
			continue
		}
		m, ok := out.Imported[mod]
		if !ok {
			m = make(map[int]FuncObject)
			out.Imported[mod] = m
		}
		m[i] = fn
	}

	return out, nil
}

type unresolvedTargetError struct{}

func (unresolvedTargetError) Error() string { return ErrorKind(UnresolvedTarget).String() }
