package render

import (
	"html/template"
	"io"

	"github.com/ovidyou/database-table-diff/internal/diff"
	"github.com/ovidyou/database-table-diff/internal/report"
)

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Schema comparison against {{.BaselineLabel}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h2 { border-bottom: 1px solid #ccc; }
.only-baseline { color: #b00020; }
.only-other { color: #1b7f2a; }
.match { color: #777; }
table { border-collapse: collapse; margin: 0.5em 0 1.5em; }
td, th { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
</style>
</head>
<body>
<h1>Schema comparison: baseline <code>{{.BaselineLabel}}</code></h1>
{{range .Entries}}
<h2>{{.Baseline}} vs {{.Other}}</h2>
{{if .TablesIdentical}}<p class="match">Table sets are identical.</p>{{end}}
{{if .OnlyInBaseline}}
<p>Tables only in <code>{{.Baseline}}</code>:</p>
<ul>{{range .OnlyInBaseline}}<li class="only-baseline">{{.}}</li>{{end}}</ul>
{{end}}
{{if .OnlyInOther}}
<p>Tables only in <code>{{.Other}}</code>:</p>
<ul>{{range .OnlyInOther}}<li class="only-other">{{.}}</li>{{end}}</ul>
{{end}}
{{if .Tables}}
<table>
<tr><th>Table</th><th>Only in {{.Baseline}}</th><th>Only in {{.Other}}</th></tr>
{{range .Tables}}
<tr>
<td>{{.Name}}</td>
{{if .NoDifference}}<td colspan="2" class="match">no differences</td>{{else}}
<td class="only-baseline">{{join .OnlyInBaseline}}</td>
<td class="only-other">{{join .OnlyInOther}}</td>
{{end}}
</tr>
{{end}}
</table>
{{end}}
{{end}}
</body>
</html>
`

type htmlEntry struct {
	Baseline        string
	Other           string
	TablesIdentical bool
	OnlyInBaseline  []string
	OnlyInOther     []string
	Tables          []htmlTable
}

type htmlTable struct {
	Name           string
	NoDifference   bool
	OnlyInBaseline []string
	OnlyInOther    []string
}

type htmlReport struct {
	BaselineLabel string
	Entries       []htmlEntry
}

// HTMLRenderer writes a report as a standalone HTML page.
type HTMLRenderer struct {
	writer io.Writer
	tmpl   *template.Template
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer(w io.Writer) *HTMLRenderer {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"join": joinOrNone,
	}).Parse(htmlPage))
	return &HTMLRenderer{writer: w, tmpl: tmpl}
}

// Render writes the full page. Every compared table appears in the output,
// either with its differences or with an explicit "no differences" cell.
func (r *HTMLRenderer) Render(rep *report.Report) error {
	page := htmlReport{BaselineLabel: rep.BaselineLabel}
	for _, entry := range rep.Entries {
		page.Entries = append(page.Entries, buildHTMLEntry(rep.BaselineLabel, entry))
	}
	return r.tmpl.Execute(r.writer, page)
}

func buildHTMLEntry(baseline string, entry report.Entry) htmlEntry {
	byTable := make(map[string]diff.ColumnDiff, len(entry.ColumnDiffs))
	for _, cd := range entry.ColumnDiffs {
		byTable[cd.Table] = cd
	}

	e := htmlEntry{
		Baseline:        baseline,
		Other:           entry.OtherLabel(),
		TablesIdentical: entry.TableDiff.Empty(),
		OnlyInBaseline:  entry.TableDiff.OnlyInBaseline,
		OnlyInOther:     entry.TableDiff.OnlyInOther,
	}
	for _, table := range entry.ComparedTables {
		cd, ok := byTable[table]
		if !ok {
			e.Tables = append(e.Tables, htmlTable{Name: table, NoDifference: true})
			continue
		}
		e.Tables = append(e.Tables, htmlTable{
			Name:           table,
			OnlyInBaseline: cd.OnlyInBaseline,
			OnlyInOther:    cd.OnlyInOther,
		})
	}
	return e
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	out := values[0]
	for _, v := range values[1:] {
		out += ", " + v
	}
	return out
}
