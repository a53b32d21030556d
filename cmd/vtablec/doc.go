// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The vtablec command builds a virtual dispatch table for a closed-world Go
program and prints a build report.

Usage: vtablec [flags] package...

It loads the given packages and their dependencies, treats every
exported struct type as a class (single inheritance modeled by one
anonymous embedded field) and every exported method or field as a
selector, computes a row-displacement-packed dispatch table the way a
whole-program ahead-of-time compiler would, and reports the result.

	$ vtablec -report=report.html ./...

Pass -trace=host:port to serve an x/net/trace event log of the build's
phases at http://host:port/debug/requests; vtablec waits for Enter
before exiting so the trace stays viewable.
*/
package main
