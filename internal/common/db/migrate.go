package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/credential-auth/internal/common/db/migrations"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	"github.com/AlibekovAA/credential-auth/internal/observability/metrics"
)

// seams for tests
var (
	openSQL        = sql.Open
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.UpContext(ctx, db, dir)
	}
	gooseVersion = goose.GetDBVersionContext
)

// Migrate applies the embedded goose migrations to databaseURL.
func Migrate(ctx context.Context, log *logger.Logger, databaseURL string) error {
	sqlDB, err := openSQL("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := gooseVersion(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	metrics.DBMigrationsApplied.Set(float64(version))
	log.Infof("database schema at version %d", version)

	return nil
}
