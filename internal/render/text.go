// Package render formats a comparison report as plain text or HTML.
// Rendering reads the report only; it never refetches or recomputes.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ovidyou/database-table-diff/internal/diff"
	"github.com/ovidyou/database-table-diff/internal/report"
)

var (
	onlyBaselineColor = color.New(color.FgRed)
	onlyOtherColor    = color.New(color.FgGreen)
	matchColor        = color.New(color.FgHiBlack)
)

// TextRenderer writes a report as indented plain text.
type TextRenderer struct {
	writer io.Writer
}

// NewTextRenderer creates a text renderer.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{writer: w}
}

// Render writes one section per compared database. A compared table with
// no column diff entry is shown as an explicit "no differences" line so
// absence is never mistaken for "not compared".
func (r *TextRenderer) Render(rep *report.Report) error {
	if _, err := fmt.Fprintf(r.writer, "Baseline: %s\n", rep.BaselineLabel); err != nil {
		return err
	}

	for _, entry := range rep.Entries {
		if err := r.renderEntry(rep.BaselineLabel, entry); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderEntry(baseline string, entry report.Entry) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n== %s vs %s ==\n", baseline, entry.OtherLabel())

	td := entry.TableDiff
	if td.Empty() {
		fmt.Fprintf(&b, "%s\n", matchColor.Sprint("table sets are identical"))
	}
	if len(td.OnlyInBaseline) > 0 {
		fmt.Fprintf(&b, "tables only in %s:\n", baseline)
		for _, t := range td.OnlyInBaseline {
			fmt.Fprintf(&b, "  %s\n", onlyBaselineColor.Sprintf("- %s", t))
		}
	}
	if len(td.OnlyInOther) > 0 {
		fmt.Fprintf(&b, "tables only in %s:\n", entry.OtherLabel())
		for _, t := range td.OnlyInOther {
			fmt.Fprintf(&b, "  %s\n", onlyOtherColor.Sprintf("+ %s", t))
		}
	}

	byTable := make(map[string]diff.ColumnDiff, len(entry.ColumnDiffs))
	for _, cd := range entry.ColumnDiffs {
		byTable[cd.Table] = cd
	}

	if len(entry.ComparedTables) > 0 {
		fmt.Fprintf(&b, "columns (%d tables compared):\n", len(entry.ComparedTables))
	}
	for _, table := range entry.ComparedTables {
		cd, ok := byTable[table]
		if !ok {
			fmt.Fprintf(&b, "  %s: %s\n", table, matchColor.Sprint("no differences"))
			continue
		}
		fmt.Fprintf(&b, "  %s:\n", table)
		for _, c := range cd.OnlyInBaseline {
			fmt.Fprintf(&b, "    %s\n", onlyBaselineColor.Sprintf("- %s (only in %s)", c, baseline))
		}
		for _, c := range cd.OnlyInOther {
			fmt.Fprintf(&b, "    %s\n", onlyOtherColor.Sprintf("+ %s (only in %s)", c, entry.OtherLabel()))
		}
	}

	_, err := io.WriteString(r.writer, b.String())
	return err
}
