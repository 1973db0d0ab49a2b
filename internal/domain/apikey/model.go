package apikey

import (
	"time"

	"github.com/google/uuid"
)

type APIKey struct {
	ID        uuid.UUID `db:"id"`
	KeyHash   string    `db:"key_hash"`
	CreatedAt time.Time `db:"created_at"`
}
