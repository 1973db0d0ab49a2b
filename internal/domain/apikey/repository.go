package apikey

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrDuplicateHash = errors.New("api key digest already exists")

type Repository interface {
	Create(ctx context.Context, key *APIKey) (uuid.UUID, error)
	ExistsByHash(ctx context.Context, keyHash string) (bool, error)
}
