package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindthevirt/binge-master-api/internal/domain/user"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.Named("UserRepository"),
	}
}

var _ user.Repository = (*UserRepository)(nil)

// Create is a single atomic insert; the unique constraint on
// unique_identifier rejects a concurrent duplicate, so there is no
// check-then-insert window.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	query := `
		INSERT INTO users (unique_identifier, email, created_at)
		VALUES ($1, $2, now())
		RETURNING id
	`
	var insertedID uuid.UUID

	err := r.db.QueryRow(ctx, query, u.UniqueIdentifier, u.Email).Scan(&insertedID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Warn("Attempted to register an existing identifier",
				zap.String("unique_identifier", u.UniqueIdentifier),
			)
			return uuid.Nil, user.ErrAlreadyRegistered
		}
		r.logger.Error("Failed to create user in database", zap.Error(err))
		return uuid.Nil, fmt.Errorf("db error creating user: %w", err)
	}

	r.logger.Info("User registered successfully",
		zap.String("id", insertedID.String()),
		zap.String("unique_identifier", u.UniqueIdentifier),
	)
	return insertedID, nil
}
