package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	infraconfig "coinwatch/internal/infrastructure/config"
	"coinwatch/internal/infrastructure/logx"

	"github.com/golang-migrate/migrate/v4"
	pgdriver "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations brings the goals schema up to date. Already-applied
// migrations are not an error.
func RunMigrations(ctx context.Context, db *DB) error {
	sqldb, err := sql.Open("pgx", db.Pool.Config().ConnString())
	if err != nil {
		return fmt.Errorf("open sql db: %w", err)
	}
	defer sqldb.Close()

	if err := waitForDB(ctx, sqldb, infraconfig.DefaultMigrateAttempts, infraconfig.DefaultMigrateRetryEvery); err != nil {
		return err
	}

	m, err := newMigrator(sqldb)
	if err != nil {
		return err
	}
	defer m.Close()

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logx.L().Info("goals schema up to date")
	case err != nil:
		return fmt.Errorf("migrate up: %w", err)
	}
	if v, dirty, err := m.Version(); err == nil {
		logx.L().Info("goals schema", zap.Uint("version", v), zap.Bool("dirty", dirty))
	}
	return nil
}

func newMigrator(sqldb *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate src: %w", err)
	}
	driver, err := pgdriver.WithInstance(sqldb, &pgdriver.Config{MigrationsTable: "goals_schema_migrations"})
	if err != nil {
		return nil, fmt.Errorf("migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	return m, nil
}

// waitForDB pings until the server answers, ctx ends or attempts run out.
func waitForDB(ctx context.Context, sqldb *sql.DB, attempts int, every time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = sqldb.PingContext(ctx); err == nil {
			return nil
		}
		logx.L().Debug("waiting for postgres", zap.Int("attempt", i+1), zap.Error(err))
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping db: %w", ctx.Err())
		case <-time.After(every):
		}
	}
	return fmt.Errorf("ping db after %d attempts: %w", attempts, err)
}
