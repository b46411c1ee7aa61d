// Package database provides connection management for the supported event
// stores: PostgreSQL via pgx, MongoDB, and embedded SQLite.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const connectAttempts = 5

// postgresSchema is applied on startup. The CHECK constraint is a second line
// of defence behind the conditional UPDATE in the repository.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS events (
	id             TEXT PRIMARY KEY,
	name           TEXT        NOT NULL,
	description    TEXT        NOT NULL DEFAULT '',
	location       TEXT        NOT NULL DEFAULT '',
	category       TEXT        NOT NULL DEFAULT '',
	date_time      TIMESTAMPTZ NOT NULL,
	image_uri      TEXT        NOT NULL DEFAULT '',
	attendee_count INTEGER     NOT NULL DEFAULT 0 CHECK (attendee_count >= 0),
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at DESC);
`

// NewPool creates and validates a pgxpool connection pool.
// It retries a few times to accommodate containers starting up.
func NewPool(ctx context.Context, cfg config.Postgres, logger *slog.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn("db connect attempt failed",
			"attempt", attempt,
			"max_attempts", connectAttempts,
			"error", err,
		)
		if attempt == connectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return pool, nil
}

// Migrate creates the events table if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}
	return nil
}
