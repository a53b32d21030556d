// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import "time"

// MeasureBuild runs fn (typically Program.Build followed by Program.Emit)
// and returns the ResourceUsage it consumed, for the operator-facing
// build report (spec §9 observability; SPEC_FULL's diagnostics surface).
func MeasureBuild(fn func() error) (ResourceUsage, error) {
	start := time.Now()
	err := fn()
	return ResourceUsage{
		PeakRSSBytes: peakRSS(),
		WallSeconds:  time.Since(start).Seconds(),
	}, err
}
