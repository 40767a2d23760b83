package migrate

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/pkg/logger"
)

func TestInitialScriptCreatesTablesInDependencyOrder(t *testing.T) {
	raw, err := migrations.ReadFile("sql/00001_initialize.sql")
	if err != nil {
		t.Fatalf("read embedded migration: %v", err)
	}
	script := string(raw)
	up, down, found := strings.Cut(script, "-- +goose Down")
	if !found || !strings.HasPrefix(script, "-- +goose Up") {
		t.Fatalf("migration must carry goose up and down sections")
	}

	order := []string{"users", "teams", "team_members", "invitations", "activity_logs"}
	last := -1
	for _, table := range order {
		idx := strings.Index(up, "CREATE TABLE IF NOT EXISTS "+table+" (")
		if idx < 0 {
			t.Fatalf("missing table %s", table)
		}
		if idx < last {
			t.Fatalf("table %s created before a table it references", table)
		}
		last = idx
		if !strings.Contains(down, "DROP TABLE IF EXISTS "+table+";") {
			t.Fatalf("down section does not drop %s", table)
		}
	}
}

func TestNewRejectsEmptyDSN(t *testing.T) {
	if _, err := New("", time.Second, nil); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestApplyUnreachableDatabase(t *testing.T) {
	r, err := New("postgres://u:p@127.0.0.1:1/postgres?connect_timeout=1", 0, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Apply(context.Background()); !domain.IsKind(err, domain.KindConnectionFailed) {
		t.Fatalf("expected connection_failed, got %v", err)
	}
}

func TestApplyRecordsVersion(t *testing.T) {
	dsn := os.Getenv("BRIZE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BRIZE_TEST_DATABASE_URL not set")
	}
	r, err := New(dsn, 5*time.Second, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := r.Apply(ctx); err != nil {
			t.Fatalf("apply #%d: %v", i+1, err)
		}
	}

	err = r.withDB(ctx, func(db *sql.DB) error {
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return err
		}
		if version != 1 {
			t.Errorf("expected goose version 1 after Apply, got %d", version)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read goose version: %v", err)
	}
}
