// Package config loads the comparison run configuration from a YAML file.
//
// Databases are declared as an ordered list because declaration order is
// meaningful: the first entry is the implicit baseline and report entries
// follow declaration order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultQueryTimeout bounds each metadata query when query_timeout is not
// configured.
const DefaultQueryTimeout = 30 * time.Second

// Database is one configured database entry.
type Database struct {
	Label            string `mapstructure:"label"`
	Driver           string `mapstructure:"driver"`
	Host             string `mapstructure:"host"`
	UnixSocket       string `mapstructure:"unix_socket"`
	ConnectionString string `mapstructure:"connection_string"`
	Port             int    `mapstructure:"port"`
	DBName           string `mapstructure:"dbname"`
	User             string `mapstructure:"user"`
	Pass             string `mapstructure:"pass"`
	// Schema applies to PostgreSQL only; defaults to "public" downstream.
	Schema string `mapstructure:"schema"`
}

// Config is the full run configuration.
type Config struct {
	Databases []Database
	// Baseline optionally names the reference database; empty means the
	// first declared entry.
	Baseline     string
	QueryTimeout time.Duration
}

// Load reads the YAML config at path. A .env file in the working directory
// is loaded first, and ${VAR} references in string fields are expanded from
// the environment so credentials can stay out of the config file.
func Load(path string) (*Config, error) {
	// Ignore a missing .env; it is an optional credential source.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	v.SetDefault("query_timeout", DefaultQueryTimeout)

	cfg := &Config{
		Baseline:     v.GetString("baseline"),
		QueryTimeout: v.GetDuration("query_timeout"),
	}
	if err := v.UnmarshalKey("databases", &cfg.Databases); err != nil {
		return nil, fmt.Errorf("failed to parse databases in %s: %w", path, err)
	}

	for i := range cfg.Databases {
		expandEnv(&cfg.Databases[i])
	}
	return cfg, nil
}

func expandEnv(db *Database) {
	db.Host = os.ExpandEnv(db.Host)
	db.UnixSocket = os.ExpandEnv(db.UnixSocket)
	db.ConnectionString = os.ExpandEnv(db.ConnectionString)
	db.DBName = os.ExpandEnv(db.DBName)
	db.User = os.ExpandEnv(db.User)
	db.Pass = os.ExpandEnv(db.Pass)
}
