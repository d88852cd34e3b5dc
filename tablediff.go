// Package tablediff compares the table and column sets of multiple
// relational databases against a designated baseline database.
//
// Tablediff supports MySQL, PostgreSQL, SQLite and generic SQL databases
// reachable through the MySQL wire protocol. It enumerates every database's
// tables and per-table columns, computes set differences against the
// baseline, and aggregates them into a single comparison report. It is a
// verification tool, not a migration tool: column types, constraints,
// indexes and data are out of scope, and it never writes to any database.
//
// # Quick Start
//
//	report, err := tablediff.CompareFile(context.Background(), "tablediff.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = tablediff.Render(report, os.Stdout, tablediff.FormatText)
//
// # Configuration
//
// Databases are declared as an ordered YAML list; the first entry is the
// baseline unless the top-level baseline key names another label:
//
//	baseline: prod
//	query_timeout: 30s
//	databases:
//	  - label: prod
//	    driver: mysql
//	    host: db1.internal
//	    dbname: app
//	    user: reader
//	    pass: ${PROD_DB_PASS}
//	  - label: staging
//	    driver: postgres
//	    host: db2.internal
//	    dbname: app
//	    schema: public
//	    user: reader
//	    pass: ${STAGING_DB_PASS}
//
// SQLite entries need only driver and dbname (the database file path).
// Credentials may reference environment variables, loaded from an optional
// .env file.
//
// # Semantics
//
// Every comparison runs sequentially in configuration order and fails fast:
// a configuration, connection or query error aborts the whole run, since a
// partial schema report could be mistaken for a complete one. Column-level
// comparison covers only tables present on both sides; tables missing from
// either side are reported at the table level alone.
package tablediff

import (
	"context"
	"io"

	"github.com/ovidyou/database-table-diff/internal/config"
	"github.com/ovidyou/database-table-diff/internal/fetch"
	"github.com/ovidyou/database-table-diff/internal/registry"
	"github.com/ovidyou/database-table-diff/internal/render"
	"github.com/ovidyou/database-table-diff/internal/report"
)

// Error classes surfaced by Compare. Classify with errors.Is.
var (
	ErrConfig       = registry.ErrConfig
	ErrConnection   = registry.ErrConnection
	ErrQuery        = fetch.ErrQuery
	ErrUnknownLabel = registry.ErrUnknownLabel
)

// Format selects a report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// Compare runs the full pipeline against cfg: validate and register every
// database, connect to all of them, snapshot tables and columns, and build
// the comparison report.
//
// All connections are closed before Compare returns, on success and on
// every error path. Fetched results are cached in a per-run snapshot, so
// nothing is queried twice within one call.
func Compare(ctx context.Context, cfg *config.Config) (*report.Report, error) {
	reg, err := registry.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	conns, err := reg.ConnectAll(ctx)
	if err != nil {
		return nil, err
	}
	defer reg.CloseAll(ctx, conns)

	fetcher := fetch.NewFetcher(cfg.QueryTimeout)
	snap, err := fetcher.TakeSnapshot(ctx, reg, conns)
	if err != nil {
		return nil, err
	}

	others := make([]string, 0, len(reg.Others()))
	for _, h := range reg.Others() {
		others = append(others, h.Label)
	}
	return report.Build(reg.Baseline().Label, others, snap), nil
}

// CompareFile loads the YAML config at path and runs Compare.
func CompareFile(ctx context.Context, path string) (*report.Report, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return Compare(ctx, cfg)
}

// Render writes the report to w in the given format. FormatText is the
// default for unknown formats.
func Render(rep *report.Report, w io.Writer, format Format) error {
	if format == FormatHTML {
		return render.NewHTMLRenderer(w).Render(rep)
	}
	return render.NewTextRenderer(w).Render(rep)
}
