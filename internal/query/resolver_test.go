package query

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ovidyou/database-table-diff/internal/registry"
)

func TestForEngineTablesQuery(t *testing.T) {
	tests := []struct {
		name     string
		engine   registry.Engine
		schema   string
		wantSQL  []string
		wantArgs []any
	}{
		{
			name:     "mysql scoped to current database",
			engine:   registry.MySQL,
			wantSQL:  []string{"information_schema.tables", "DATABASE()", "BASE TABLE"},
			wantArgs: nil,
		},
		{
			name:     "generic sql matches mysql semantics",
			engine:   registry.GenericSQL,
			wantSQL:  []string{"information_schema.tables", "DATABASE()", "BASE TABLE"},
			wantArgs: nil,
		},
		{
			name:     "postgres default schema",
			engine:   registry.Postgres,
			wantSQL:  []string{"information_schema.tables", "table_schema = $1", "BASE TABLE"},
			wantArgs: []any{"public"},
		},
		{
			name:     "postgres custom schema",
			engine:   registry.Postgres,
			schema:   "audit",
			wantSQL:  []string{"table_schema = $1"},
			wantArgs: []any{"audit"},
		},
		{
			name:     "sqlite schema catalog",
			engine:   registry.SQLite,
			wantSQL:  []string{"sqlite_master", "type = 'table'"},
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ForEngine(tt.engine, tt.schema).TablesQuery()
			for _, fragment := range tt.wantSQL {
				if !strings.Contains(q.SQL, fragment) {
					t.Errorf("query missing %q:\n%s", fragment, q.SQL)
				}
			}
			if !reflect.DeepEqual(q.Args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", q.Args, tt.wantArgs)
			}
		})
	}
}

func TestForEngineColumnsQuery(t *testing.T) {
	tests := []struct {
		name     string
		engine   registry.Engine
		wantSQL  []string
		wantArgs []any
	}{
		{
			name:     "mysql columns by table",
			engine:   registry.MySQL,
			wantSQL:  []string{"information_schema.columns", "table_name = ?"},
			wantArgs: []any{"users"},
		},
		{
			name:   "postgres columns unscoped by schema",
			engine: registry.Postgres,
			// Table listing is schema-scoped but column listing is not;
			// the query must not reference table_schema.
			wantSQL:  []string{"information_schema.columns", "table_name = $1"},
			wantArgs: []any{"users"},
		},
		{
			name:     "sqlite table_info pragma",
			engine:   registry.SQLite,
			wantSQL:  []string{"pragma_table_info"},
			wantArgs: []any{"users"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ForEngine(tt.engine, "").ColumnsQuery("users")
			for _, fragment := range tt.wantSQL {
				if !strings.Contains(q.SQL, fragment) {
					t.Errorf("query missing %q:\n%s", fragment, q.SQL)
				}
			}
			if !reflect.DeepEqual(q.Args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", q.Args, tt.wantArgs)
			}
		})
	}
}

func TestPostgresColumnsQueryNotSchemaScoped(t *testing.T) {
	q := ForEngine(registry.Postgres, "audit").ColumnsQuery("users")
	if strings.Contains(q.SQL, "table_schema") {
		t.Errorf("postgres columns query unexpectedly schema-scoped:\n%s", q.SQL)
	}
}

func TestResolverDeterminism(t *testing.T) {
	engines := []registry.Engine{registry.MySQL, registry.Postgres, registry.SQLite, registry.GenericSQL}
	for _, engine := range engines {
		first := ForEngine(engine, "s")
		second := ForEngine(engine, "s")
		if !reflect.DeepEqual(first.TablesQuery(), second.TablesQuery()) {
			t.Errorf("%s: tables query not deterministic", engine)
		}
		if !reflect.DeepEqual(first.ColumnsQuery("t"), second.ColumnsQuery("t")) {
			t.Errorf("%s: columns query not deterministic", engine)
		}
	}
}
