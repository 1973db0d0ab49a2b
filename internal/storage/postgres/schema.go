package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// The unique constraints on api_keys.key_hash and users.unique_identifier are
// load-bearing: concurrent inserts race past any application-level existence
// check, so conflicts must be rejected by the engine itself.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS api_keys (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		key_hash TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		unique_identifier TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS watchtime_events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		unique_identifier TEXT NOT NULL,
		ts TIMESTAMPTZ NOT NULL,
		watchtime_ms BIGINT NOT NULL,
		tracking_enabled BOOLEAN NOT NULL,
		daily_limit_ms BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_watchtime_events_identifier_ts
		ON watchtime_events (unique_identifier, ts)`,
}

// EnsureSchema creates the tables at first startup if they are absent.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			logger.Error("Failed to apply schema statement", zap.Error(err))
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	logger.Info("Database schema ensured")
	return nil
}
