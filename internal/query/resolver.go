// Package query resolves per-engine metadata queries. Resolvers are
// stateless: identical inputs always produce identical query text, so the
// resolver layer is testable without a live database.
package query

import "github.com/ovidyou/database-table-diff/internal/registry"

// Query is a metadata query ready for execution.
type Query struct {
	SQL  string
	Args []any
}

// Resolver produces the introspection queries for one engine. Every query
// selects exactly one text column: a table name or a column name.
type Resolver interface {
	// TablesQuery lists the base tables visible to the connection.
	TablesQuery() Query
	// ColumnsQuery lists the column names of the named table.
	ColumnsQuery(table string) Query
}

// ForEngine returns the resolver for the engine. schemaName applies to
// PostgreSQL only and defaults to "public" when empty.
func ForEngine(engine registry.Engine, schemaName string) Resolver {
	switch engine {
	case registry.Postgres:
		if schemaName == "" {
			schemaName = "public"
		}
		return postgresResolver{schema: schemaName}
	case registry.SQLite:
		return sqliteResolver{}
	default:
		// MySQL and GenericSQL share standard information_schema queries
		// scoped to the connection's current database.
		return mysqlResolver{}
	}
}

type mysqlResolver struct{}

func (mysqlResolver) TablesQuery() Query {
	return Query{SQL: `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`}
}

func (mysqlResolver) ColumnsQuery(table string) Query {
	return Query{
		SQL: `
			SELECT column_name
			FROM information_schema.columns
			WHERE table_schema = DATABASE() AND table_name = ?
			ORDER BY ordinal_position
		`,
		Args: []any{table},
	}
}

type postgresResolver struct {
	schema string
}

func (r postgresResolver) TablesQuery() Query {
	return Query{
		SQL: `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = $1 AND table_type = 'BASE TABLE'
			ORDER BY table_name
		`,
		Args: []any{r.schema},
	}
}

// ColumnsQuery is not schema-scoped, unlike TablesQuery. Tables with the
// same name in different schemas are ambiguous here; a known limitation.
func (postgresResolver) ColumnsQuery(table string) Query {
	return Query{
		SQL: `
			SELECT column_name
			FROM information_schema.columns
			WHERE table_name = $1
			ORDER BY ordinal_position
		`,
		Args: []any{table},
	}
}

type sqliteResolver struct{}

func (sqliteResolver) TablesQuery() Query {
	return Query{SQL: `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`}
}

func (sqliteResolver) ColumnsQuery(table string) Query {
	// pragma_table_info is the table-valued form of PRAGMA table_info,
	// which allows selecting just the name column.
	return Query{
		SQL:  `SELECT name FROM pragma_table_info(?)`,
		Args: []any{table},
	}
}
