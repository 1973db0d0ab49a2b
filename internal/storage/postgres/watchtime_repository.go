package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindthevirt/binge-master-api/internal/domain/watchtime"
	"go.uber.org/zap"
)

type WatchtimeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWatchtimeRepository(db *pgxpool.Pool, logger *zap.Logger) *WatchtimeRepository {
	return &WatchtimeRepository{
		db:     db,
		logger: logger.Named("WatchtimeRepository"),
	}
}

var _ watchtime.Repository = (*WatchtimeRepository)(nil)

func (r *WatchtimeRepository) Append(ctx context.Context, event *watchtime.Event) (uuid.UUID, error) {
	query := `
		INSERT INTO watchtime_events (unique_identifier, ts, watchtime_ms, tracking_enabled, daily_limit_ms)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var insertedID uuid.UUID

	err := r.db.QueryRow(ctx, query,
		event.UniqueIdentifier,
		event.Timestamp,
		event.WatchtimeMs,
		event.TrackingEnabled,
		event.DailyLimitMs,
	).Scan(&insertedID)

	if err != nil {
		r.logger.Error("Failed to append watchtime event", zap.Error(err))
		return uuid.Nil, fmt.Errorf("db error appending watchtime event: %w", err)
	}

	r.logger.Debug("Watchtime event appended",
		zap.String("id", insertedID.String()),
		zap.String("unique_identifier", event.UniqueIdentifier),
	)
	return insertedID, nil
}

// ListRecent compares calendar dates, not a rolling interval: an event from
// windowDays ago is included regardless of its time of day.
func (r *WatchtimeRepository) ListRecent(ctx context.Context, uniqueIdentifier string, windowDays int) ([]*watchtime.Event, error) {
	query := `
		SELECT id, unique_identifier, ts, watchtime_ms, tracking_enabled, daily_limit_ms
		FROM watchtime_events
		WHERE unique_identifier = $1
		  AND ts::date >= CURRENT_DATE - $2::int
		ORDER BY ts ASC
	`
	rows, err := r.db.Query(ctx, query, uniqueIdentifier, windowDays)
	if err != nil {
		r.logger.Error("Failed to query recent watchtime events", zap.Error(err))
		return nil, fmt.Errorf("db error listing watchtime events: %w", err)
	}
	defer rows.Close()

	events := make([]*watchtime.Event, 0)

	for rows.Next() {
		var ev watchtime.Event
		err := rows.Scan(
			&ev.ID,
			&ev.UniqueIdentifier,
			&ev.Timestamp,
			&ev.WatchtimeMs,
			&ev.TrackingEnabled,
			&ev.DailyLimitMs,
		)
		if err != nil {
			r.logger.Error("Failed to scan watchtime event row", zap.Error(err))
			return nil, fmt.Errorf("database scan error during list: %w", err)
		}
		events = append(events, &ev)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating watchtime event rows", zap.Error(err))
		return nil, fmt.Errorf("database iteration error on list events: %w", err)
	}

	return events, nil
}
