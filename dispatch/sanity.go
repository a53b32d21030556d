// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "fmt"

// CheckInvariants re-verifies the universal properties spec §8 claims
// about a built DispatchTable: non-overlapping, maximally-coalesced,
// sorted ranges; packing correctness; and the equality-operator
// signature specialization. It is a debugging aid, in the spirit of
// go/ssa's sanityCheck, not something Build calls itself — Build is
// expected to maintain these invariants by construction.
func CheckInvariants(dt *DispatchTable) error {
	for _, sel := range dt.Selectors() {
		if err := checkRanges(sel); err != nil {
			return err
		}
		if err := checkPacking(dt, sel); err != nil {
			return err
		}
		if sel.Name == EqualityOperatorName {
			if err := checkEqualitySpecialization(sel); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRanges(sel *SelectorInfo) error {
	for i, tr := range sel.TargetRanges {
		if tr.Range.Start > tr.Range.End {
			return fmt.Errorf("selector %d (%s): range %d has start > end", sel.ID, sel.Name, i)
		}
		if i > 0 {
			prev := sel.TargetRanges[i-1]
			if prev.Range.End >= tr.Range.Start {
				return fmt.Errorf("selector %d (%s): ranges %d and %d overlap or are unsorted", sel.ID, sel.Name, i-1, i)
			}
			if prev.Range.End+1 == tr.Range.Start && prev.Target == tr.Target {
				return fmt.Errorf("selector %d (%s): ranges %d and %d should have been coalesced", sel.ID, sel.Name, i-1, i)
			}
		}
	}
	return nil
}

func checkPacking(dt *DispatchTable, sel *SelectorInfo) error {
	if sel.Offset == nil {
		return nil
	}
	table := dt.Table()
	off := int64(*sel.Offset)
	for _, tr := range sel.TargetRanges {
		for c := tr.Range.Start; c <= tr.Range.End; c++ {
			idx := off + int64(c)
			if idx < 0 || idx >= int64(len(table)) {
				return fmt.Errorf("selector %d (%s): offset %d places class %d outside the table", sel.ID, sel.Name, off, c)
			}
			if table[idx] != tr.Target {
				return fmt.Errorf("selector %d (%s): table[%d] does not hold the expected target for class %d", sel.ID, sel.Name, idx, c)
			}
		}
	}
	return nil
}

func checkEqualitySpecialization(sel *SelectorInfo) error {
	sig, ok := sel.Signature()
	if !ok || len(sig.Positional) == 0 {
		return nil
	}
	if sig.Positional[0].Type.IsNullable() {
		return fmt.Errorf("selector %d (==): right-hand operand slot is nullable", sel.ID)
	}
	return nil
}
