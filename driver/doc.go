// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver loads a closed-world Go program with golang.org/x/tools
// and projects its named struct types and their method sets into the
// external collaborator interfaces dispatch.ClassHierarchy,
// dispatch.TypeLattice and dispatch.CallCounts.
//
// It exists because dispatch's core treats the source OO language's
// front end as external metadata (spec §1, §6): driver is a concrete
// stand-in, built over real Go programs, so dispatch.Builder can be
// exercised end to end without a source-language compiler. A struct
// with an embedded field models single inheritance; its exported
// methods model virtual members; package-level call counts come from a
// simple syntactic call-site tally rather than profiling data.
package driver
