package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Options configures how Open connects to the database.
type Options struct {
	Driver string
	// DSN is a file path (or ":memory:") for sqlite and a go-sql-driver DSN for mysql.
	DSN string
	// ConnectAttempts bounds how many times the initial ping is tried.
	ConnectAttempts int
	Logger          *slog.Logger
}

// DB wraps a SQL database connection together with its dialect.
type DB struct {
	*sql.DB
	dialect dialect
	logger  *slog.Logger
}

type dialect struct {
	name            string
	migrationsTable string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		name: DriverSQLite,
		migrationsTable: `CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
)`,
	},
	DriverMySQL: {
		name: DriverMySQL,
		migrationsTable: `CREATE TABLE IF NOT EXISTS schema_migrations (
    version BIGINT PRIMARY KEY,
    applied_at DATETIME(6) NOT NULL
) ENGINE=InnoDB`,
	},
}

// Open connects to the configured database, waits for it to answer and
// applies pending migrations.
func Open(ctx context.Context, opts Options) (*DB, error) {
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}
	d, ok := dialects[opts.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	dsn := opts.DSN
	if d.name == DriverMySQL {
		var err error
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, err
		}
	}

	sqlDB, err := sql.Open(d.name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	switch d.name {
	case DriverSQLite:
		// Pragmas are per connection and ":memory:" databases are per connection too.
		sqlDB.SetMaxOpenConns(1)
	case DriverMySQL:
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	db := &DB{DB: sqlDB, dialect: d, logger: opts.Logger}
	if err := db.ping(ctx, opts.ConnectAttempts); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if d.name == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.Migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Dialect reports the driver name in use.
func (db *DB) Dialect() string {
	return db.dialect.name
}

func (db *DB) ping(ctx context.Context, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}
	r := retry.New[struct{}](retry.Config{
		MaxAttempts:   attempts,
		InitialDelay:  200 * time.Millisecond,
		BackoffPolicy: retry.BackoffExponential,
	})

	_, err := r.Do(ctx, func(ctx context.Context) (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.logger.Warn("database not reachable", "driver", db.dialect.name, "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}
	return nil
}

// mysqlDSN forces the options the repositories rely on: DATETIME columns
// scan into time.Time, and UPDATE reports matched rather than changed rows.
func mysqlDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("mysql: DSN is required")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}
