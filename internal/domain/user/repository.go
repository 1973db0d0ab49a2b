package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrAlreadyRegistered = errors.New("user already registered")

type Repository interface {
	// Create inserts atomically; a duplicate identifier surfaces as
	// ErrAlreadyRegistered, backed by the storage-level unique constraint.
	Create(ctx context.Context, u *User) (uuid.UUID, error)
}
