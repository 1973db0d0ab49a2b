package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mindthevirt/binge-master-api/internal/domain/watchtime"
	"go.uber.org/zap"
)

// DefaultWindowDays is the aggregation window served to the extension.
const DefaultWindowDays = 7

type WatchtimeService struct {
	repo   watchtime.Repository
	logger *zap.Logger
}

func NewWatchtimeService(repo watchtime.Repository, logger *zap.Logger) *WatchtimeService {
	return &WatchtimeService{
		repo:   repo,
		logger: logger.Named("WatchtimeService"),
	}
}

// Record appends one sample. The timestamp is assigned here, at receipt;
// duplicate submissions produce duplicate rows.
func (s *WatchtimeService) Record(ctx context.Context, uniqueIdentifier string, watchtimeMs int64, trackingEnabled bool, dailyLimitMs int64) error {
	event := &watchtime.Event{
		UniqueIdentifier: uniqueIdentifier,
		Timestamp:        time.Now().UTC(),
		WatchtimeMs:      watchtimeMs,
		TrackingEnabled:  trackingEnabled,
		DailyLimitMs:     dailyLimitMs,
	}

	if _, err := s.repo.Append(ctx, event); err != nil {
		s.logger.Error("Failed to record watchtime event",
			zap.String("unique_identifier", uniqueIdentifier),
			zap.Error(err),
		)
		return fmt.Errorf("repository error recording watchtime: %w", err)
	}

	s.logger.Debug("Watchtime recorded",
		zap.String("unique_identifier", uniqueIdentifier),
		zap.Int64("watchtime_ms", watchtimeMs),
	)
	return nil
}

// QueryRecent returns the identifier's events from the last windowDays
// calendar days, oldest first, along with the sum of their watchtime values.
// An unknown identifier yields an empty slice and a zero total.
func (s *WatchtimeService) QueryRecent(ctx context.Context, uniqueIdentifier string, windowDays int) ([]*watchtime.Event, int64, error) {
	events, err := s.repo.ListRecent(ctx, uniqueIdentifier, windowDays)
	if err != nil {
		s.logger.Error("Failed to query recent watchtime",
			zap.String("unique_identifier", uniqueIdentifier),
			zap.Error(err),
		)
		return nil, 0, fmt.Errorf("repository error querying watchtime: %w", err)
	}

	var total int64
	for _, ev := range events {
		total += ev.WatchtimeMs
	}

	return events, total, nil
}
