package watchtime

import (
	"time"

	"github.com/google/uuid"
)

// Event is one watch-time sample. The timestamp is assigned by the server at
// receipt; TrackingEnabled and DailyLimitMs snapshot the client preference
// active when the sample was taken. Rows are append-only.
type Event struct {
	ID               uuid.UUID `db:"id"`
	UniqueIdentifier string    `db:"unique_identifier"`
	Timestamp        time.Time `db:"ts"`
	WatchtimeMs      int64     `db:"watchtime_ms"`
	TrackingEnabled  bool      `db:"tracking_enabled"`
	DailyLimitMs     int64     `db:"daily_limit_ms"`
}
