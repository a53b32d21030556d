// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrorKind classifies an internal fault (spec §7). Every kind is fatal:
// there is no runtime recovery path, and callers should treat any Fault
// as "abort the compilation".
type ErrorKind int

const (
	// StructuralAssertion marks an invariant violation: a range
	// overlap, isSetter disagreement between merged targets, a
	// signature computed before its ranges were finalized, or a
	// signature computed twice.
	StructuralAssertion ErrorKind = iota
	// MissingMetadata marks a reachable member that lacks front-end
	// metadata.
	MissingMetadata
	// UnresolvedTarget marks an emission-time failure to resolve a
	// function object for a reference whose class is concrete and in
	// a loaded module.
	UnresolvedTarget
)

func (k ErrorKind) String() string {
	switch k {
	case StructuralAssertion:
		return "structural assertion"
	case MissingMetadata:
		return "missing metadata"
	case UnresolvedTarget:
		return "unresolved target"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Fault is the error type for every internal invariant violation raised
// by this package. It carries the call stack frame where the fault was
// raised, in the style of golang.org/x/xerrors.
type Fault struct {
	Kind  ErrorKind
	Frame xerrors.Frame
	msg   string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("dispatch: %s: %s", f.Kind, f.msg)
}

// Format implements fmt.Formatter so that "%+v" prints the fault's frame.
func (f *Fault) Format(s fmt.State, verb rune) { xerrors.FormatError(f, s, verb) }

// FormatError implements xerrors.Formatter.
func (f *Fault) FormatError(p xerrors.Printer) error {
	p.Print(f.Error())
	f.Frame.Format(p)
	return nil
}

// fail raises a Fault by panicking. Every caller of fail is reporting a
// programmer error in the compiler itself (spec §7); there is nothing
// for the immediate caller to do but let the panic propagate to
// Builder.Build, which converts it back into a returned error.
func fail(kind ErrorKind, format string, args ...interface{}) {
	panic(&Fault{
		Kind:  kind,
		Frame: xerrors.Caller(1),
		msg:   fmt.Sprintf(format, args...),
	})
}

// recoverFault converts a panic carrying a *Fault into a returned error,
// and re-panics anything else (a genuine bug in this package, not a
// reported invariant violation).
func recoverFault(errp *error) {
	if r := recover(); r != nil {
		if f, ok := r.(*Fault); ok {
			*errp = f
			return
		}
		panic(r)
	}
}

// ErrUnknownSelector is returned by SelectorRegistry.SelectorForTarget
// when no selector has been created for the given reference's id yet.
var ErrUnknownSelector = xerrors.New("dispatch: unknown selector")
