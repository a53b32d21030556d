// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "golang.org/x/text/unicode/norm"

// normalizeName puts a member name into Unicode NFC before it is used as
// a dynamic-dispatch index key, so that two source identifiers which are
// canonically equivalent but differently composed (combining marks vs.
// precomposed characters) collide the way the language's identifier
// equality rules intend. This keeps DynamicGetters/Setters/Methods
// lookups, and therefore Build's output, stable across front ends that
// don't normalize identifiers themselves (spec §8 property 7).
func normalizeName(name string) string {
	return norm.NFC.String(name)
}
