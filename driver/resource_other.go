// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package driver

// ResourceUsage is the spec §5 resource-model accounting surface: peak
// resident-set size and wall-clock time for one Build+Emit run.
type ResourceUsage struct {
	PeakRSSBytes int64
	WallSeconds  float64
}

// peakRSS has no portable analogue to getrusage's ru_maxrss outside
// Linux in this driver; platforms other than Linux report zero rather
// than guess from runtime.MemStats, which measures heap size, not RSS.
func peakRSS() int64 { return 0 }
