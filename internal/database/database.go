package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"

	"github.com/jonkarrer/brize/internal/domain"
)

const retryInterval = time.Second

// NormalizeURL rewrites the currentSchema query parameter, which pgx would
// forward to the server as an unknown setting, into search_path.
func NormalizeURL(raw string) (string, error) {
	if !strings.Contains(raw, domain.SchemaParam+"=") {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	q := u.Query()
	schema := q.Get(domain.SchemaParam)
	q.Del(domain.SchemaParam)
	if schema != "" && q.Get("search_path") == "" {
		q.Set("search_path", schema)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseConfig normalizes raw and parses it into a pgx connection config.
func ParseConfig(raw string) (*pgx.ConnConfig, error) {
	dsn, err := NormalizeURL(raw)
	if err != nil {
		return nil, err
	}
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	return cfg, nil
}

// Connect opens a single connection, retrying for up to wait while the server
// is unreachable or still starting. Other server-side rejections such as bad
// credentials or a missing database are not retried.
func Connect(ctx context.Context, raw string, wait time.Duration, log *slog.Logger) (*pgx.Conn, error) {
	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, domain.Fail(domain.KindConnectionFailed, "Failed to connect to database", err)
	}

	var conn *pgx.Conn
	attempt := 0
	backoff := retry.WithMaxDuration(wait, retry.NewConstant(retryInterval))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		c, err := pgx.ConnectConfig(ctx, cfg)
		if err == nil {
			err = c.Ping(ctx)
			if err != nil {
				_ = c.Close(ctx)
			}
		}
		if err != nil {
			if !transient(err) {
				return err
			}
			log.Debug("database not ready", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, domain.Fail(domain.KindConnectionFailed, "Failed to connect to database", err)
	}
	log.Debug("connected to database", "host", cfg.Host, "port", cfg.Port, "attempts", attempt)
	return conn, nil
}

// transient reports whether err may clear up by itself: network failures, a
// server that is starting or shutting down, or a broken connection (class 08).
func transient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return true
	}
	switch pgErr.Code {
	case "57P01", "57P02", "57P03":
		return true
	}
	return strings.HasPrefix(pgErr.Code, "08")
}
