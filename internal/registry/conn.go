package registry

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/mattn/go-sqlite3"
)

// Conn is a live connection able to run metadata queries. Every metadata
// query selects exactly one text column; QueryColumn returns its values in
// result order. Connections are not safe for concurrent use.
type Conn interface {
	QueryColumn(ctx context.Context, query string, args ...any) ([]string, error)
	Close(ctx context.Context) error
}

// Connect opens and pings a connection for the handle. Failures are fatal
// to the run and wrapped with the handle label.
func (h *Handle) Connect(ctx context.Context) (Conn, error) {
	switch h.Engine {
	case Postgres:
		conn, err := pgx.Connect(ctx, h.dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrConnection, h.Label, err)
		}
		if err := conn.Ping(ctx); err != nil {
			_ = conn.Close(ctx)
			return nil, fmt.Errorf("%w: %q: %w", ErrConnection, h.Label, err)
		}
		return &pgxConn{conn: conn}, nil
	default:
		db, err := sql.Open(h.driverName(), h.dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrConnection, h.Label, err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %q: %w", ErrConnection, h.Label, err)
		}
		return &sqlConn{db: db}, nil
	}
}

// driverName maps the engine to its database/sql driver. GenericSQL runs
// standard information_schema queries through the MySQL driver.
func (h *Handle) driverName() string {
	if h.Engine == SQLite {
		return "sqlite3"
	}
	return "mysql"
}

// ConnectAll connects every registered database in registration order,
// failing on the first error. On failure, connections opened so far are
// closed before returning.
func (r *Registry) ConnectAll(ctx context.Context) (map[string]Conn, error) {
	conns := make(map[string]Conn, len(r.handles))
	for _, h := range r.handles {
		conn, err := h.Connect(ctx)
		if err != nil {
			r.CloseAll(ctx, conns)
			return nil, err
		}
		conns[h.Label] = conn
	}
	return conns, nil
}

// CloseAll closes every connection in the map, reporting close failures as
// warnings so they cannot mask the run's result.
func (r *Registry) CloseAll(ctx context.Context, conns map[string]Conn) {
	for _, h := range r.handles {
		conn, ok := conns[h.Label]
		if !ok {
			continue
		}
		if err := conn.Close(ctx); err != nil {
			warnf("failed to close connection %q: %v", h.Label, err)
		}
	}
}

type pgxConn struct {
	conn *pgx.Conn
}

func (c *pgxConn) QueryColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (c *pgxConn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

type sqlConn struct {
	db *sql.DB
}

func (c *sqlConn) QueryColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (c *sqlConn) Close(context.Context) error {
	return c.db.Close()
}
