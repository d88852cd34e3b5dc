// Package registry holds the set of configured databases for one comparison
// run. Each database is registered once under a unique label, validated
// before any connection attempt, and connected on demand.
package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/ovidyou/database-table-diff/internal/config"
)

var (
	// ErrConfig reports an invalid or incomplete database configuration.
	ErrConfig = errors.New("invalid database configuration")
	// ErrConnection reports a failure to establish a database connection.
	ErrConnection = errors.New("database connection failed")
	// ErrUnknownLabel reports an operation referencing an unregistered label.
	ErrUnknownLabel = errors.New("unknown database label")
)

// Engine identifies a supported database engine.
type Engine string

const (
	MySQL      Engine = "mysql"
	Postgres   Engine = "postgres"
	SQLite     Engine = "sqlite"
	GenericSQL Engine = "sql"
)

// ParseEngine maps a config driver string to an Engine.
func ParseEngine(driver string) (Engine, error) {
	switch driver {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "sql", "generic":
		return GenericSQL, nil
	default:
		return "", fmt.Errorf("unsupported driver: %s", driver)
	}
}

// Handle is a validated, immutable reference to one configured database.
type Handle struct {
	Label  string
	Engine Engine
	// Schema is the PostgreSQL schema to inspect, empty for other engines.
	Schema string

	dsn string
}

// Registry holds handles in registration order plus the baseline label.
type Registry struct {
	handles  []*Handle
	byLabel  map[string]*Handle
	baseline string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byLabel: make(map[string]*Handle)}
}

// Register validates cfg and adds a handle under the given label. The first
// registered label becomes the baseline unless SetBaseline overrides it.
func (r *Registry) Register(label string, cfg config.Database) (*Handle, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: database label is required", ErrConfig)
	}
	if _, exists := r.byLabel[label]; exists {
		return nil, fmt.Errorf("%w: %q: duplicate label", ErrConfig, label)
	}
	if cfg.Driver == "" {
		return nil, fmt.Errorf("%w: %q: driver is required", ErrConfig, label)
	}
	engine, err := ParseEngine(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrConfig, label, err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("%w: %q: dbname is required", ErrConfig, label)
	}

	if engine == SQLite {
		// SQLite files carry no credentials; drop any that were supplied.
		cfg.User = ""
		cfg.Pass = ""
	} else {
		if cfg.User == "" {
			return nil, fmt.Errorf("%w: %q: user is required", ErrConfig, label)
		}
		if cfg.ConnectionString == "" && cfg.Host == "" && cfg.UnixSocket == "" {
			return nil, fmt.Errorf("%w: %q: one of connection_string, host or unix_socket is required", ErrConfig, label)
		}
	}

	h := &Handle{
		Label:  label,
		Engine: engine,
		Schema: cfg.Schema,
		dsn:    buildDSN(engine, cfg),
	}
	r.handles = append(r.handles, h)
	r.byLabel[label] = h
	if len(r.handles) == 1 {
		r.baseline = label
	}
	return h, nil
}

// SetBaseline designates an already-registered label as the baseline.
func (r *Registry) SetBaseline(label string) error {
	if _, ok := r.byLabel[label]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	r.baseline = label
	return nil
}

// FromConfig registers every configured database in declaration order and
// applies the configured baseline, if any.
func FromConfig(cfg *config.Config) (*Registry, error) {
	if len(cfg.Databases) == 0 {
		return nil, fmt.Errorf("%w: no databases configured", ErrConfig)
	}
	r := New()
	for _, db := range cfg.Databases {
		if _, err := r.Register(db.Label, db); err != nil {
			return nil, err
		}
	}
	if cfg.Baseline != "" {
		if err := r.SetBaseline(cfg.Baseline); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Handle returns the handle registered under label.
func (r *Registry) Handle(label string) (*Handle, error) {
	h, ok := r.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return h, nil
}

// Baseline returns the baseline handle.
func (r *Registry) Baseline() *Handle {
	return r.byLabel[r.baseline]
}

// Handles returns all handles in registration order.
func (r *Registry) Handles() []*Handle {
	return r.handles
}

// Others returns all non-baseline handles in registration order.
func (r *Registry) Others() []*Handle {
	others := make([]*Handle, 0, len(r.handles)-1)
	for _, h := range r.handles {
		if h.Label != r.baseline {
			others = append(others, h)
		}
	}
	return others
}

// buildDSN assembles the driver connection string. An explicit
// connection_string wins for every engine except SQLite, where dbname is
// the database file path.
func buildDSN(engine Engine, cfg config.Database) string {
	if engine == SQLite {
		return cfg.DBName
	}
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}

	switch engine {
	case Postgres:
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		host := cfg.Host
		if host == "" {
			// pgx treats a path-like host as a unix socket directory.
			host = cfg.UnixSocket
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			host, port, cfg.User, cfg.Pass, cfg.DBName)
	default: // MySQL and GenericSQL share the go-sql-driver DSN format.
		if cfg.UnixSocket != "" {
			return fmt.Sprintf("%s:%s@unix(%s)/%s", cfg.User, cfg.Pass, cfg.UnixSocket, cfg.DBName)
		}
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", cfg.User, cfg.Pass, cfg.Host, port, cfg.DBName)
	}
}

// warnf is used by deferred close paths that must not mask the run error.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
