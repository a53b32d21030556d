// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "golang.org/x/net/trace"

// Tracer is an optional, nil-safe event log of Builder.Build's phase
// transitions (target-range building, signature synthesis, packing).
// It has no effect on Build's result; it exists
// purely so a long-running compilation can be inspected through
// golang.org/x/net/trace's event-log viewer while it runs, mirroring the
// teacher's own nil-safe optional instrumentation convention (compare
// go/ssa's mode&LogSource).
type Tracer struct {
	ev trace.EventLog
}

// NewTracer creates and returns a Tracer recording under family/title.
// Call Finish when the build completes.
func NewTracer(family, title string) *Tracer {
	return &Tracer{ev: trace.NewEventLog(family, title)}
}

// Phase records a formatted progress message. Safe to call on a nil
// *Tracer.
func (t *Tracer) Phase(format string, args ...interface{}) {
	if t == nil || t.ev == nil {
		return
	}
	t.ev.Printf(format, args...)
}

// Errorf records a formatted error on the event log. Safe to call on a
// nil *Tracer.
func (t *Tracer) Errorf(format string, args ...interface{}) {
	if t == nil || t.ev == nil {
		return
	}
	t.ev.Errorf(format, args...)
}

// Finish releases the underlying event log. Safe to call on a nil
// *Tracer.
func (t *Tracer) Finish() {
	if t == nil || t.ev == nil {
		return
	}
	t.ev.Finish()
}
