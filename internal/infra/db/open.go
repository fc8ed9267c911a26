// Package db opens the relational store and applies the schema.
//
// Two drivers are supported: PostgreSQL through pgx for deployments and SQLite through
// modernc.org/sqlite for local runs and tests. Both share the same schema, kept as one
// set of goose migrations per dialect.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"lingua-cms/internal/resilience/retry"
	"lingua-cms/pkg/config"
)

// Driver names a database/sql driver.
type Driver string

const (
	DriverPostgres Driver = "pgx"
	DriverSQLite   Driver = "sqlite"
)

// Config holds the connection settings.
type Config struct {
	Driver          Driver
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns the pool defaults for driver.
func DefaultConfig(driver Driver, dsn string) Config {
	return Config{
		Driver:          driver,
		DSN:             dsn,
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// LoadConfig reads DB_DRIVER, DATABASE_URL and the DB_* pool variables.
func LoadConfig() Config {
	cfg := DefaultConfig(Driver(config.GetEnvString("DB_DRIVER", string(DriverPostgres))), config.GetEnvString("DATABASE_URL", ""))
	cfg.MaxOpenConns = config.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = config.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = config.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}

// Validate checks the settings before any connection is attempted.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want pgx or sqlite)", c.Driver)
	}
	if strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}
	if err := config.ValidateIntRange("DB_MAX_OPEN_CONNS", c.MaxOpenConns, 1, 1000); err != nil {
		return err
	}
	if err := config.ValidateIntRange("DB_MAX_IDLE_CONNS", c.MaxIdleConns, 0, c.MaxOpenConns); err != nil {
		return err
	}
	if err := config.ValidatePositiveDuration("DB_CONN_MAX_LIFETIME", c.ConnMaxLifetime); err != nil {
		return err
	}
	return config.ValidateNonNegativeDuration("DB_CONN_MAX_IDLE_TIME", c.ConnMaxIdleTime)
}

// Open creates the connection pool and waits until the database answers.
// Startup is retried with backoff so the server can come up alongside the database.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if cfg.Driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
		if isMemoryDSN(dsn) {
			// every connection to :memory: is a separate database
			cfg.MaxOpenConns, cfg.MaxIdleConns = 1, 1
			cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime = 0, 0
		}
	}

	db, err := sql.Open(string(cfg.Driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", string(cfg.Driver)),
		slog.String("dsn", MaskDSN(cfg.DSN)),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	err = retry.Do(ctx, retry.DBConnect(), func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established")
	return db, nil
}

// sqliteDSN turns on foreign keys for every pooled connection, waits on locks instead of
// failing, and stores timestamps in a format the driver parses back into time.Time.
func sqliteDSN(dsn string) string {
	params := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)", "_time_format=sqlite"}
	if !isMemoryDSN(dsn) {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	var add []string
	for _, p := range params {
		key, _, _ := strings.Cut(p, "=")
		if key == "_pragma" {
			if strings.Contains(dsn, p) {
				continue
			}
		} else if strings.Contains(dsn, key+"=") {
			continue
		}
		add = append(add, p)
	}
	if len(add) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(add, "&")
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// MaskDSN hides the password of a URL or key=value style DSN for logging.
func MaskDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		rest := dsn[i+3:]
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return dsn
		}
		userInfo := rest[:at]
		if user, _, ok := strings.Cut(userInfo, ":"); ok {
			return dsn[:i+3] + user + ":****" + rest[at:]
		}
		return dsn
	}

	fields := strings.Fields(dsn)
	for j, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[j] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
