// Package fetch executes resolved metadata queries and caches the results
// for one comparison run.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ovidyou/database-table-diff/internal/query"
	"github.com/ovidyou/database-table-diff/internal/registry"
)

// ErrQuery reports a metadata query that failed after a successful
// connection.
var ErrQuery = errors.New("metadata query failed")

// Fetcher runs metadata queries with a bounded per-query timeout.
type Fetcher struct {
	timeout time.Duration
}

// NewFetcher creates a fetcher. A zero timeout disables the bound.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{timeout: timeout}
}

// FetchTables returns the handle's table names, deduplicated and sorted
// ascending for deterministic diff presentation.
func (f *Fetcher) FetchTables(ctx context.Context, h *registry.Handle, conn registry.Conn) ([]string, error) {
	q := query.ForEngine(h.Engine, h.Schema).TablesQuery()
	tables, err := f.runQuery(ctx, conn, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: listing tables: %w", ErrQuery, h.Label, err)
	}
	return sortUnique(tables), nil
}

// FetchColumns returns the column names of one table, deduplicated and
// sorted ascending. The caller is expected to pass a table known to exist.
func (f *Fetcher) FetchColumns(ctx context.Context, h *registry.Handle, conn registry.Conn, table string) ([]string, error) {
	q := query.ForEngine(h.Engine, h.Schema).ColumnsQuery(table)
	columns, err := f.runQuery(ctx, conn, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: listing columns of %q: %w", ErrQuery, h.Label, table, err)
	}
	return sortUnique(columns), nil
}

func (f *Fetcher) runQuery(ctx context.Context, conn registry.Conn, q query.Query) ([]string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	return conn.QueryColumn(ctx, q.SQL, q.Args...)
}

func sortUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
