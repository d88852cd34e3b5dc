// Package diff computes set differences between a baseline database's
// schema and another database's schema, at the table level and at the
// column level.
//
// Column comparison is restricted to tables present on both sides. A table
// missing from either side is already reported by the table diff and is
// skipped here, so a renamed table yields no partial column information.
// Known limitation, kept to avoid double-reporting.
package diff

import "sort"

// TableDiff is the table-level difference between a baseline database and
// one other database.
type TableDiff struct {
	BaselineLabel  string
	OtherLabel     string
	OnlyInBaseline []string
	OnlyInOther    []string
}

// Empty reports whether both sides hold the same table set.
func (d TableDiff) Empty() bool {
	return len(d.OnlyInBaseline) == 0 && len(d.OnlyInOther) == 0
}

// ColumnDiff is the column-level difference for one table present on both
// sides.
type ColumnDiff struct {
	Table          string
	OnlyInBaseline []string
	OnlyInOther    []string
}

// Tables compares two table sets by exact, case-sensitive name equality.
// Both difference sets come back sorted ascending.
func Tables(baselineLabel, otherLabel string, baseline, other []string) TableDiff {
	return TableDiff{
		BaselineLabel:  baselineLabel,
		OtherLabel:     otherLabel,
		OnlyInBaseline: missingFrom(baseline, other),
		OnlyInOther:    missingFrom(other, baseline),
	}
}

// Columns compares per-table column sets for every table present in both
// inputs. Tables with identical column sets produce no entry, so an empty
// result means every compared table matched. Entries are sorted by table
// name; running twice on identical inputs yields identical output.
func Columns(baseline, other map[string][]string) []ColumnDiff {
	shared := make([]string, 0, len(baseline))
	for table := range baseline {
		if _, ok := other[table]; ok {
			shared = append(shared, table)
		}
	}
	sort.Strings(shared)

	diffs := []ColumnDiff{}
	for _, table := range shared {
		onlyBase := missingFrom(baseline[table], other[table])
		onlyOther := missingFrom(other[table], baseline[table])
		if len(onlyBase) == 0 && len(onlyOther) == 0 {
			continue
		}
		diffs = append(diffs, ColumnDiff{
			Table:          table,
			OnlyInBaseline: onlyBase,
			OnlyInOther:    onlyOther,
		})
	}
	return diffs
}

// missingFrom returns the elements of a absent from b, sorted ascending.
func missingFrom(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}

	out := []string{}
	for _, v := range a {
		if !inB[v] {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
