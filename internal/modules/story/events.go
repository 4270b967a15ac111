package story

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
)

// GetEventsInRange returns the brand's calendar events between from and to
// inclusive, cached for 1h per range.
func (e *Engine) GetEventsInRange(ctx context.Context, brandID uuid.UUID, from, to time.Time) ([]*types.CalendarEvent, error) {
	key := keyEvents(brandID, from, to)
	if v, ok := e.cache.Get(key); ok {
		if events, ok := v.([]*types.CalendarEvent); ok {
			return events, nil
		}
	}

	events, err := e.events.ListInRange(dbctx.Context{Ctx: ctx}, brandID, from, to)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, events, ttlEvents)
	return events, nil
}

// eventForDate picks the day's most relevant event: relevance tier high >
// medium > low, then earliest in the sort. Nil when the day has no event.
func (e *Engine) eventForDate(ctx context.Context, brandID uuid.UUID, date time.Time) (*types.CalendarEvent, error) {
	day := date.Truncate(24 * time.Hour)
	events, err := e.GetEventsInRange(ctx, brandID, day, day.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	ranked := make([]*types.CalendarEvent, len(events))
	copy(ranked, events)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceRank() < ranked[j].RelevanceRank()
	})
	return ranked[0], nil
}

// eventsVersion fingerprints the brand's event set (count plus latest update
// time), cached for 5m. Season bundles embed it in their cache key so event
// edits age them out without a brand-wide flush.
func (e *Engine) eventsVersion(ctx context.Context, brandID uuid.UUID) (string, error) {
	key := keyEventsVersion(brandID)
	if v, ok := e.cache.Get(key); ok {
		if version, ok := v.(string); ok {
			return version, nil
		}
	}

	count, maxUpdated, err := e.events.Version(dbctx.Context{Ctx: ctx}, brandID)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum([]byte(fmt.Sprintf("%d|%d", count, maxUpdated.UnixNano())))
	version := hex.EncodeToString(sum[:8])
	e.cache.Set(key, version, ttlEventsVersion)
	return version, nil
}
