// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package driver

import "golang.org/x/sys/unix"

// ResourceUsage is the spec §5 resource-model accounting surface: peak
// resident-set size and wall-clock time for one Build+Emit run, reported
// the way the teacher's dashboard/app/build package tracks builder
// resource consumption.
type ResourceUsage struct {
	PeakRSSBytes int64
	WallSeconds  float64
}

// peakRSS reads ru_maxrss from getrusage(RUSAGE_SELF), which on Linux is
// already reported in kilobytes.
func peakRSS() int64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return ru.Maxrss * 1024
}
