package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindthevirt/binge-master-api/internal/domain/apikey"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type APIKeyRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAPIKeyRepository(db *pgxpool.Pool, logger *zap.Logger) *APIKeyRepository {
	return &APIKeyRepository{
		db:     db,
		logger: logger.Named("APIKeyRepository"),
	}
}

var _ apikey.Repository = (*APIKeyRepository)(nil)

func (r *APIKeyRepository) Create(ctx context.Context, key *apikey.APIKey) (uuid.UUID, error) {
	query := `
		INSERT INTO api_keys (key_hash, created_at)
		VALUES ($1, now())
		RETURNING id
	`
	var insertedID uuid.UUID

	err := r.db.QueryRow(ctx, query, key.KeyHash).Scan(&insertedID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Warn("API key digest collided with an existing record",
				zap.String("constraint", pgErr.ConstraintName),
			)
			return uuid.Nil, apikey.ErrDuplicateHash
		}
		r.logger.Error("Failed to create api key in database", zap.Error(err))
		return uuid.Nil, fmt.Errorf("db error creating api key: %w", err)
	}

	r.logger.Info("API key created successfully", zap.String("id", insertedID.String()))
	return insertedID, nil
}

func (r *APIKeyRepository) ExistsByHash(ctx context.Context, keyHash string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM api_keys WHERE key_hash = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, keyHash).Scan(&exists); err != nil {
		r.logger.Error("Failed to check api key existence", zap.Error(err))
		return false, fmt.Errorf("db error checking api key: %w", err)
	}

	return exists, nil
}
