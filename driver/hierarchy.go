// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/vtablec/vtablec/dispatch"
)

// class is the driver's notion of one named struct type: a node in the
// single-inheritance forest rooted at types with no anonymous struct
// field. super is nil for a root. instantiated records whether the
// loaded program contains a composite literal, &T{} or new(T) for this
// type; uninstantiated classes are modeled as abstract (spec §4.2's
// "never instantiated" case), getting no ClassID.
type class struct {
	named        *types.Named
	super        *class
	instantiated bool
	id           dispatch.ClassID // valid only if instantiated

	methods []*types.Func
	fields  []*types.Var
}

// discoverClasses walks every loaded package's type-checked syntax,
// collecting named struct types, their single-embedding super-chain,
// exported methods and exported fields, and which are instantiated
// anywhere in the closed-world program.
func discoverClasses(pkgs []*packages.Package) []*class {
	byNamed := make(map[*types.Named]*class)
	var order []*types.Named

	get := func(n *types.Named) *class {
		c, ok := byNamed[n]
		if !ok {
			c = &class{named: n}
			byNamed[n] = c
			order = append(order, n)
		}
		return c
	}

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if p.Types == nil {
			return
		}
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() {
				continue
			}
			named, ok := obj.Type().(*types.Named)
			if !ok {
				continue
			}
			st, ok := named.Underlying().(*types.Struct)
			if !ok {
				continue
			}
			c := get(named)
			for i := 0; i < st.NumFields(); i++ {
				f := st.Field(i)
				if f.Anonymous() {
					if superNamed, ok := f.Type().(*types.Named); ok {
						if _, ok := superNamed.Underlying().(*types.Struct); ok {
							c.super = get(superNamed)
							continue
						}
					}
				}
				if f.Exported() {
					c.fields = append(c.fields, f)
				}
			}
			for i := 0; i < named.NumMethods(); i++ {
				m := named.Method(i)
				if m.Exported() {
					c.methods = append(c.methods, m)
				}
			}
		}

	})

	markInstantiatedTypes(pkgs, byNamed)

	// Deterministic super-first ordering: sort by embedding depth, then
	// by types.Object.Id within a depth (the bare name for exported
	// types, package-qualified otherwise), mirroring go/ssa's own emphasis
	// on stable output ordering for reproducible programs.
	depthOf := func(c *class) int {
		d := 0
		for s := c.super; s != nil; s = s.super {
			d++
		}
		return d
	}
	classes := make([]*class, 0, len(order))
	for _, n := range order {
		classes = append(classes, byNamed[n])
	}
	sort.Slice(classes, func(i, j int) bool {
		di, dj := depthOf(classes[i]), depthOf(classes[j])
		if di != dj {
			return di < dj
		}
		return classes[i].named.Obj().Id() < classes[j].named.Obj().Id()
	})

	var next dispatch.ClassID
	for _, c := range classes {
		if c.instantiated {
			c.id = next
			next++
		}
	}

	return classes
}

// classHierarchy adapts the discovered forest to dispatch.ClassHierarchy.
type classHierarchy struct {
	classes []dispatch.ClassInfo
	maxID   dispatch.ClassID
	sel     *selectorTable
}

func newClassHierarchy(classes []*class, sel *selectorTable) *classHierarchy {
	indexByNamed := make(map[*types.Named]int, len(classes))
	for i, c := range classes {
		indexByNamed[c.named] = i
	}

	h := &classHierarchy{sel: sel}
	for _, c := range classes {
		super := -1
		if c.super != nil {
			super = indexByNamed[c.super.named]
		}

		var id *dispatch.ClassID
		if c.instantiated {
			cid := c.id
			id = &cid
			if cid > h.maxID {
				h.maxID = cid
			}
		}

		var members []dispatch.Member
		for _, f := range c.fields {
			members = append(members, newFieldMember(c, f, sel))
		}
		for _, m := range c.methods {
			members = append(members, newProcedureMember(c, m, sel))
		}

		h.classes = append(h.classes, dispatch.ClassInfo{
			Name:       c.named.Obj().Name(),
			Super:      super,
			ConcreteID: id,
			Members:    members,
		})
	}
	return h
}

func (h *classHierarchy) Classes() []dispatch.ClassInfo      { return h.classes }
func (h *classHierarchy) MaxConcreteClassID() dispatch.ClassID { return h.maxID }
