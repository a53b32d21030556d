// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch builds the virtual dispatch table for a closed-world,
// whole-program compilation: it groups instance members into selectors,
// computes per-selector class-id target ranges, synthesizes a uniform
// call signature per selector, and packs every selector's row into one
// flat function table via row-displacement compression.
//
// The package is deliberately narrow. Source parsing, IR lowering, code
// generation and serialization of the resulting binary all live outside
// it; dispatch consumes already-resolved class and member metadata
// through the ClassHierarchy and TypeLattice interfaces and produces a
// DispatchTable that a code generator reads from.
//
// Build is single-threaded and non-suspending: all inputs must be
// immutable for its duration, and its result is only safe to read after
// it returns. See Builder.Build.
package dispatch
