package dto

import (
	"time"

	"github.com/mindthevirt/binge-master-api/internal/domain/watchtime"
)

// UpdateWatchtimeRequest mirrors the extension payload. Watchtime is a
// pointer so "required" distinguishes a missing field from a zero sample;
// negative values are rejected outright.
type UpdateWatchtimeRequest struct {
	UniqueIdentifier string `json:"uniqueIdentifier" binding:"required"`
	Watchtime        *int64 `json:"watchtime" binding:"required,gte=0"`
	TrackingEnabled  *bool  `json:"trackingEnabled"`
	DailyLimit       int64  `json:"dailyLimit" binding:"gte=0"`
}

type UpdateWatchtimeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type WatchtimeEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Watchtime int64     `json:"watchtime"`
}

type GetWatchtimeResponse struct {
	Status         string           `json:"status"`
	Data           []WatchtimeEntry `json:"data"`
	TotalWatchtime int64            `json:"total_watchtime"`
}

func NewGetWatchtimeResponse(events []*watchtime.Event, total int64) *GetWatchtimeResponse {
	entries := make([]WatchtimeEntry, len(events))
	for i, ev := range events {
		entries[i] = WatchtimeEntry{
			Timestamp: ev.Timestamp,
			Watchtime: ev.WatchtimeMs,
		}
	}

	return &GetWatchtimeResponse{
		Status:         "success",
		Data:           entries,
		TotalWatchtime: total,
	}
}
