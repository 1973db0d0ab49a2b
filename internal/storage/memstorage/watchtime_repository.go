package memstorage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindthevirt/binge-master-api/internal/domain/watchtime"
)

type WatchtimeRepository struct {
	mu     sync.RWMutex
	events []*watchtime.Event
}

func NewWatchtimeRepository() *WatchtimeRepository {
	return &WatchtimeRepository{
		events: make([]*watchtime.Event, 0),
	}
}

var _ watchtime.Repository = (*WatchtimeRepository)(nil)

func (r *WatchtimeRepository) Append(ctx context.Context, event *watchtime.Event) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *event
	stored.ID = uuid.New()
	r.events = append(r.events, &stored)

	return stored.ID, nil
}

func (r *WatchtimeRepository) ListRecent(ctx context.Context, uniqueIdentifier string, windowDays int) ([]*watchtime.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cutoff := dateOf(time.Now().UTC().AddDate(0, 0, -windowDays))

	matched := make([]*watchtime.Event, 0)
	for _, ev := range r.events {
		if ev.UniqueIdentifier != uniqueIdentifier {
			continue
		}
		if dateOf(ev.Timestamp).Before(cutoff) {
			continue
		}
		evCopy := *ev
		matched = append(matched, &evCopy)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})

	return matched, nil
}

func (r *WatchtimeRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.events)
}

// dateOf truncates to the calendar date; the window comparison is on dates,
// not a rolling interval.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
