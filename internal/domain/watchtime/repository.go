package watchtime

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Append(ctx context.Context, event *Event) (uuid.UUID, error)
	// ListRecent returns the identifier's events whose calendar date is on or
	// after today minus windowDays, ordered by timestamp ascending.
	ListRecent(ctx context.Context, uniqueIdentifier string, windowDays int) ([]*Event, error)
}
