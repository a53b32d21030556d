// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "sort"

// RowDisplacementPacker fits every participating selector's row into one
// sparse array via first-fit row displacement, choosing each selector's
// offset so that table[offset+classID] yields the selector's target for
// every class in its ranges (spec §4.5, C6).
type RowDisplacementPacker struct {
	tracer *Tracer
}

// NewRowDisplacementPacker returns a packer that logs phase progress to
// tracer, which may be nil.
func NewRowDisplacementPacker(tracer *Tracer) *RowDisplacementPacker {
	return &RowDisplacementPacker{tracer: tracer}
}

type rowEntry struct {
	classID uint32
	target  Reference
}

func flattenRow(ranges []TargetRange) []rowEntry {
	var row []rowEntry
	for _, tr := range ranges {
		for c := tr.Range.Start; c <= tr.Range.End; c++ {
			row = append(row, rowEntry{classID: c, target: tr.Target})
		}
	}
	return row
}

// Pack orders selectors descending by concreteClasses*10+callCount
// (ties broken by ascending selector id, for determinism across runs
// with unordered input; spec §8 property 7 and §9's open question on the
// ordering heuristic), then places each row with first-fit search from a
// moving firstAvailable cursor. It sets Offset and Participates on every
// selector it places and returns the packed table; a selector with no
// target ranges is skipped and keeps a nil Offset.
func (p *RowDisplacementPacker) Pack(selectors []*SelectorInfo) []Reference {
	order := make([]*SelectorInfo, len(selectors))
	copy(order, selectors)
	sort.Slice(order, func(i, j int) bool {
		wi := int64(order[i].ConcreteClasses)*10 + int64(order[i].CallCount)
		wj := int64(order[j].ConcreteClasses)*10 + int64(order[j].CallCount)
		if wi != wj {
			return wi > wj
		}
		return order[i].ID < order[j].ID
	})

	var table []Reference
	firstAvailable := 0

	advance := func() {
		for firstAvailable < len(table) && table[firstAvailable] != nil {
			firstAvailable++
		}
	}

	for _, sel := range order {
		row := flattenRow(sel.TargetRanges)
		if len(row) == 0 {
			continue
		}

		firstIndex := int64(row[0].classID)
		lastIndex := int64(row[len(row)-1].classID)
		o := int64(firstAvailable) - firstIndex

		for !rowFits(table, o, row) {
			o++
		}

		needed := o + lastIndex + 1
		if needed > int64(len(table)) {
			grown := make([]Reference, needed)
			copy(grown, table)
			table = grown
		}
		for _, e := range row {
			idx := o + int64(e.classID)
			if table[idx] != nil && table[idx] != e.target {
				fail(StructuralAssertion, "selector %d (%s): offset %d collides with an existing entry at index %d", sel.ID, sel.Name, o, idx)
			}
			table[idx] = e.target
		}

		off := uint32(o)
		sel.Offset = &off
		sel.Participates = true

		advance()
	}

	if p.tracer != nil {
		p.tracer.Phase("packing: placed %d selectors into a table of length %d", len(order), len(table))
	}

	return table
}

// rowFits reports whether row can be written at offset o without
// colliding with any already-occupied slot. A negative absolute index
// never fits, which is what keeps o from settling on a value that would
// require writing below index 0.
func rowFits(table []Reference, o int64, row []rowEntry) bool {
	for _, e := range row {
		idx := o + int64(e.classID)
		if idx < 0 {
			return false
		}
		if idx < int64(len(table)) && table[idx] != nil {
			return false
		}
	}
	return true
}
