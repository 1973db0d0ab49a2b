package user

import (
	"time"

	"github.com/google/uuid"
)

// User is one extension installation. UniqueIdentifier is a client-chosen
// opaque string; a second registration for the same identifier is rejected,
// never upserted.
type User struct {
	ID               uuid.UUID `db:"id"`
	UniqueIdentifier string    `db:"unique_identifier"`
	Email            string    `db:"email"`
	CreatedAt        time.Time `db:"created_at"`
}
