// Package report aggregates per-database diff results into a single
// read-only structure for rendering.
package report

import (
	"sort"

	"github.com/ovidyou/database-table-diff/internal/diff"
	"github.com/ovidyou/database-table-diff/internal/fetch"
)

// Entry pairs one non-baseline database's table diff with its column
// diffs.
type Entry struct {
	TableDiff diff.TableDiff
	// ComparedTables lists the tables present on both sides, sorted
	// ascending. A compared table without a ColumnDiffs entry has no
	// column differences; renderers use this to show explicit "no
	// difference" markers.
	ComparedTables []string
	ColumnDiffs    []diff.ColumnDiff
}

// OtherLabel returns the label of the database this entry compares against
// the baseline.
func (e Entry) OtherLabel() string {
	return e.TableDiff.OtherLabel
}

// Report is the complete comparison result: one entry per non-baseline
// database, in configuration order.
type Report struct {
	BaselineLabel string
	Entries       []Entry
}

// Build assembles the report from a snapshot. others holds the
// non-baseline labels in their original configuration order, which the
// report preserves regardless of anything else.
func Build(baselineLabel string, others []string, snap *fetch.Snapshot) *Report {
	r := &Report{BaselineLabel: baselineLabel}

	for _, other := range others {
		td := diff.Tables(baselineLabel, other, snap.Tables[baselineLabel], snap.Tables[other])
		r.Entries = append(r.Entries, Entry{
			TableDiff:      td,
			ComparedTables: sharedTables(snap.Tables[baselineLabel], snap.Tables[other]),
			ColumnDiffs:    diff.Columns(snap.Columns[baselineLabel], snap.Columns[other]),
		})
	}
	return r
}

func sharedTables(baseline, other []string) []string {
	inOther := make(map[string]bool, len(other))
	for _, t := range other {
		inOther[t] = true
	}

	shared := []string{}
	for _, t := range baseline {
		if inOther[t] {
			shared = append(shared, t)
		}
	}
	sort.Strings(shared)
	return shared
}
