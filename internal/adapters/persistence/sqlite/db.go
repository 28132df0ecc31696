// Package sqlite persists custom content overrides, quote carts and quote
// requests in a SQLite database through gorm.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/ports"
)

// CheckerName identifies the database in readiness reports.
const CheckerName = "sqlite"

// Options configures Open.
type Options struct {
	DSN          string
	MaxOpenConns int

	// LogQueries logs every statement at debug level.
	LogQueries bool
	Logger     *slog.Logger
}

// DB owns the gorm handle shared by the stores in this package.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

var _ ports.HealthChecker = (*DB)(nil)

// Open connects and migrates the schema.
func Open(opts Options) (*DB, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	level := logger.Warn
	if opts.LogQueries {
		level = logger.Info
	}

	gdb, err := gorm.Open(sqlite.Open(opts.DSN), &gorm.Config{
		Logger: logger.New(slogWriter{log: log}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if err := gdb.AutoMigrate(&entryRow{}, &cartRow{}, &quoteRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrating sqlite schema: %w", err)
	}

	return &DB{gorm: gdb, sql: sqlDB}, nil
}

// Name implements ports.HealthChecker.
func (d *DB) Name() string { return CheckerName }

// Check implements ports.HealthChecker.
func (d *DB) Check(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Close releases the connection pool.
func (d *DB) Close() error {
	return d.sql.Close()
}

// storeError maps gorm failures onto domain errors.
func storeError(err error, entity, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NewNotFoundError(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewConflictError(entity, fmt.Sprintf("%q already exists", id))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%s %q: %w", entity, id, err)
	}
}

// slogWriter routes gorm's logger output into slog at debug level.
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.log.Debug(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
