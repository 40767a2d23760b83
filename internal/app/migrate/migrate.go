package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jonkarrer/brize/internal/database"
	"github.com/jonkarrer/brize/internal/domain"
)

//go:embed sql/*.sql
var migrations embed.FS

const migrationsDir = "sql"

// Runner applies the embedded schema.
type Runner struct {
	dsn  string
	wait time.Duration
	log  *slog.Logger
}

// New returns a migration runner for dsn. wait bounds how long Apply waits for
// the server to accept connections.
func New(dsn string, wait time.Duration, log *slog.Logger) (Runner, error) {
	if dsn == "" {
		return Runner{}, errors.New("empty database dsn")
	}
	if log == nil {
		log = slog.Default()
	}
	return Runner{dsn: dsn, wait: wait, log: log}, nil
}

// Apply waits for the database to accept connections and then applies
// pending migrations through goose, so a later `migrate status` or `down`
// sees the same version.
func (r Runner) Apply(ctx context.Context) error {
	conn, err := database.Connect(ctx, r.dsn, r.wait, r.log)
	if err != nil {
		return err
	}
	_ = conn.Close(ctx)

	return r.Ensure(ctx)
}

// Ensure applies pending migrations.
func (r Runner) Ensure(ctx context.Context) error {
	return r.withDB(ctx, func(db *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		r.log.Info("applying migrations")
		if err := goose.UpContext(runCtx, db, migrationsDir); err != nil {
			return domain.Fail(domain.KindMigrationFailed, "Failed to run migrations", err)
		}
		r.log.Info("migrations applied")
		return nil
	})
}

// Status reports applied and pending migrations through goose's logger.
func (r Runner) Status(ctx context.Context) error {
	return r.withDB(ctx, func(db *sql.DB) error {
		if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
			return domain.Fail(domain.KindMigrationFailed, "Failed to read migration status", err)
		}
		return nil
	})
}

// Down rolls back the latest migration, or everything above targetVersion
// when it is positive.
func (r Runner) Down(ctx context.Context, targetVersion int64) error {
	return r.withDB(ctx, func(db *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if targetVersion > 0 {
			r.log.Info("rolling back migrations", "target", targetVersion)
			if err := goose.DownToContext(runCtx, db, migrationsDir, targetVersion); err != nil {
				return domain.Fail(domain.KindMigrationFailed, fmt.Sprintf("Failed to roll back to version %d", targetVersion), err)
			}
		} else {
			r.log.Info("rolling back latest migration")
			if err := goose.DownContext(runCtx, db, migrationsDir); err != nil {
				return domain.Fail(domain.KindMigrationFailed, "Failed to roll back latest migration", err)
			}
		}

		r.log.Info("rollback complete")
		return nil
	})
}

func (r Runner) withDB(ctx context.Context, fn func(*sql.DB) error) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	dsn, err := database.NormalizeURL(r.dsn)
	if err != nil {
		return domain.Fail(domain.KindConnectionFailed, "Failed to connect to database", err)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return domain.Fail(domain.KindConnectionFailed, "Failed to connect to database", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return domain.Fail(domain.KindConnectionFailed, "Failed to connect to database", err)
	}

	return fn(db)
}
