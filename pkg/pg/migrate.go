package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
)

// goose keeps its base FS, table name and logger in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration found at the root of migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, migrations fs.FS, log *slog.Logger) error {
	return withGoose(ctx, pool, cfg, migrations, log, func(db *sql.DB) error {
		return goose.UpContext(ctx, db, ".")
	})
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, pool *pgxpool.Pool, cfg Config, migrations fs.FS, log *slog.Logger) error {
	return withGoose(ctx, pool, cfg, migrations, log, func(db *sql.DB) error {
		return goose.DownContext(ctx, db, ".")
	})
}

// Version returns the current schema version, 0 for an empty database.
func Version(ctx context.Context, pool *pgxpool.Pool, cfg Config, migrations fs.FS, log *slog.Logger) (int64, error) {
	var v int64
	err := withGoose(ctx, pool, cfg, migrations, log, func(db *sql.DB) error {
		var err error
		v, err = goose.GetDBVersionContext(ctx, db)
		return err
	})
	return v, err
}

func withGoose(ctx context.Context, pool *pgxpool.Pool, cfg Config, migrations fs.FS, log *slog.Logger, fn func(*sql.DB) error) error {
	if migrations == nil {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationsNotProvided)
	}
	if log == nil {
		log = logger.Discard()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	// goose needs database/sql; this shares the pool's connections.
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", logger.Component("pg"), logger.Error(err))
		}
	}()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&gooseLogger{ctx: ctx, log: log})
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := fn(db); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// gooseLogger routes goose's Printf-style output into slog.
type gooseLogger struct {
	ctx context.Context
	log *slog.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.ErrorContext(l.ctx, fmt.Sprintf(format, v...), logger.Component("goose"))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.InfoContext(l.ctx, fmt.Sprintf(format, v...), logger.Component("goose"))
}
