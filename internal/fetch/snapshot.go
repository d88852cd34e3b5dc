package fetch

import (
	"context"

	"github.com/ovidyou/database-table-diff/internal/registry"
)

// Snapshot holds every table and column set fetched during one run. It is
// built once and read-only afterwards: the diff and report stages work
// from the snapshot so nothing is refetched within a single report.
type Snapshot struct {
	// Labels preserves registration order.
	Labels []string
	// Tables maps database label to its sorted table names.
	Tables map[string][]string
	// Columns maps database label to table name to sorted column names.
	Columns map[string]map[string][]string
}

// TakeSnapshot fetches all tables and then all columns for every registered
// database, strictly sequentially in registration order. The first failure
// aborts the whole snapshot; there is no partial result.
func (f *Fetcher) TakeSnapshot(ctx context.Context, reg *registry.Registry, conns map[string]registry.Conn) (*Snapshot, error) {
	snap := &Snapshot{
		Tables:  make(map[string][]string),
		Columns: make(map[string]map[string][]string),
	}

	for _, h := range reg.Handles() {
		tables, err := f.FetchTables(ctx, h, conns[h.Label])
		if err != nil {
			return nil, err
		}
		snap.Labels = append(snap.Labels, h.Label)
		snap.Tables[h.Label] = tables
	}

	// One round trip per table; acceptable because a snapshot is taken
	// once per report, not on a hot path.
	for _, h := range reg.Handles() {
		columns := make(map[string][]string, len(snap.Tables[h.Label]))
		for _, table := range snap.Tables[h.Label] {
			cols, err := f.FetchColumns(ctx, h, conns[h.Label], table)
			if err != nil {
				return nil, err
			}
			columns[table] = cols
		}
		snap.Columns[h.Label] = columns
	}

	return snap, nil
}
