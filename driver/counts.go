// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/vtablec/vtablec/dispatch"
)

// callCounts is a dispatch.CallCounts backed by a syntactic tally of
// selector expressions in the loaded program: every x.Method(...) call
// site increments the method's selector id, every assignment through a
// field selector increments the setter id, and every other field read
// increments the getter id. It is a stand-in for the call-site profile
// a real compiler front end would hand the core (spec §6).
type callCounts struct {
	counts map[dispatch.SelectorID]uint32
}

func (c *callCounts) CallCount(id dispatch.SelectorID) uint32 { return c.counts[id] }

// tallyCallCounts walks every loaded package's syntax, resolving each
// selector expression through go/types and bumping the corresponding
// selector id in sel.
func tallyCallCounts(pkgs []*packages.Package, sel *selectorTable) *callCounts {
	cc := &callCounts{counts: make(map[dispatch.SelectorID]uint32)}

	assignTargets := make(map[ast.Expr]bool)

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, file := range p.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				if assign, ok := n.(*ast.AssignStmt); ok {
					for _, lhs := range assign.Lhs {
						assignTargets[lhs] = true
					}
				}
				return true
			})
		}

		for _, file := range p.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				sexpr, ok := n.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				selInfo, ok := p.TypesInfo.Selections[sexpr]
				if !ok {
					return true
				}
				name := sexpr.Sel.Name
				switch selInfo.Kind() {
				case types.MethodVal:
					if fn, ok := selInfo.Obj().(*types.Func); ok && fn.Exported() {
						if id, ok := sel.methodIDs[name]; ok {
							cc.counts[id]++
						}
					}
				case types.FieldVal:
					if assignTargets[sexpr] {
						if id, ok := sel.methodIDs[name]; ok {
							cc.counts[id]++
						}
					} else if id, ok := sel.getterIDs[name]; ok {
						cc.counts[id]++
					}
				}
				return true
			})
		}
	})

	return cc
}
