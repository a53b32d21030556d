// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"fmt"
	"go/ast"
	"go/types"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/vtablec/vtablec/dispatch"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedImports | packages.NeedDeps | packages.NeedTypes |
	packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedModule

// Program is the fully-loaded, closed-world result of LoadProgram: the
// three external collaborators dispatch.Builder needs (C1, C2 and the
// call counts), plus
// enough bookkeeping for a driver-level Functions/ModuleResolver
// implementation to emit the packed table.
type Program struct {
	Hierarchy dispatch.ClassHierarchy
	Lattice   dispatch.TypeLattice
	Counts    dispatch.CallCounts

	pkgs     []*packages.Package
	pkgByObj map[types.Object]*packages.Package
	modules  *ModuleSet
}

// LoadProgram loads the Go packages matching patterns, fails fast on any
// load or type error (a closed-world build cannot proceed with partial
// information; spec §7's no-partial-result rule extends to the driver),
// and projects the result into a Program ready for dispatch.NewBuilder.
func LoadProgram(dir string, patterns ...string) (*Program, error) {
	cfg := &packages.Config{Mode: loadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("driver: load: %w", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("driver: one or more packages failed to type-check")
	}

	classes := discoverClasses(pkgs)

	superOf := make(map[types.Type]types.Type, len(classes))
	for _, c := range classes {
		if c.super != nil {
			superOf[c.named] = c.super.named
		}
	}

	sel := newSelectorTable()
	hierarchy := newClassHierarchy(classes, sel)
	counts := tallyCallCounts(pkgs, sel)
	lattice := newTypeLattice(superOf)

	mainPath, err := resolveMainModule(dir)
	if err != nil {
		return nil, err
	}

	pkgByObj := make(map[types.Object]*packages.Package)
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if p.Types == nil {
			return
		}
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			pkgByObj[scope.Lookup(name)] = p
		}
	})

	return &Program{
		Hierarchy: hierarchy,
		Lattice:   lattice,
		Counts:    counts,
		pkgs:      pkgs,
		pkgByObj:  pkgByObj,
		modules:   &ModuleSet{mainPath: mainPath},
	}, nil
}

// markInstantiatedTypes scans every file of every package concurrently
// (one goroutine per file, with no limit set on the errgroup, following
// the teacher's go/packages/internal/linecount pattern of one goroutine
// per file-system unit of work) for composite literals, &T{} and new(T)
// expressions, marking the corresponding class instantiated.
//
// Each goroutine only ever sets a bool to true, so concurrent writes to
// distinct classes need no synchronization; mu only guards against two
// goroutines racing on the same class's flag (same named type used from
// two different files).
func markInstantiatedTypes(pkgs []*packages.Package, byNamed map[*types.Named]*class) {
	var mu sync.Mutex
	var g errgroup.Group

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, file := range p.Syntax {
			file := file
			g.Go(func() error {
				ast.Inspect(file, func(n ast.Node) bool {
					texpr := instantiationTypeExpr(n)
					if texpr == nil {
						return true
					}
					tv, ok := p.TypesInfo.Types[texpr]
					if !ok {
						return true
					}
					named, ok := tv.Type.(*types.Named)
					if !ok {
						return true
					}
					mu.Lock()
					if c, ok := byNamed[named]; ok {
						c.instantiated = true
					}
					mu.Unlock()
					return true
				})
				return nil
			})
		}
	})

	// No goroutine above can return an error; this just waits for them.
	_ = g.Wait()
}

func instantiationTypeExpr(n ast.Node) ast.Expr {
	switch n := n.(type) {
	case *ast.CompositeLit:
		return n.Type
	case *ast.CallExpr:
		if id, ok := n.Fun.(*ast.Ident); ok && id.Name == "new" && len(n.Args) == 1 {
			return n.Args[0]
		}
	case *ast.UnaryExpr:
		if n.Op.String() == "&" {
			if lit, ok := n.X.(*ast.CompositeLit); ok {
				return lit.Type
			}
		}
	}
	return nil
}
