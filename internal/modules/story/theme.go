package story

import (
	"context"
	"time"

	"github.com/google/uuid"

	storyrepo "github.com/andora-ai/andora-backend/internal/data/repos/story"
	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
)

// GetMonthlyTheme returns the theme for (brand, month, year), cached for 6h.
// A missing theme is a hard NotFound: downstream planning cannot proceed
// without it.
func (e *Engine) GetMonthlyTheme(ctx context.Context, brandID uuid.UUID, month, year int) (*types.MonthlyTheme, error) {
	key := keyTheme(brandID, month, year)
	if v, ok := e.cache.Get(key); ok {
		if theme, ok := v.(*types.MonthlyTheme); ok {
			return theme, nil
		}
	}

	theme, err := e.themes.GetByMonth(dbctx.Context{Ctx: ctx}, brandID, month, year)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, theme, ttlTheme)
	return theme, nil
}

// GetWeeklySubplots returns the month's parsed subplots, cached for 3h.
// Absent themes or subplot tables degrade to an empty list: a thinner story
// is better than no story.
func (e *Engine) GetWeeklySubplots(ctx context.Context, brandID uuid.UUID, month, year int) ([]types.SubplotContext, error) {
	key := keySubplots(brandID, month, year)
	if v, ok := e.cache.Get(key); ok {
		if subplots, ok := v.([]types.SubplotContext); ok {
			return subplots, nil
		}
	}

	rows, err := e.subplots.ListByBrandMonth(dbctx.Context{Ctx: ctx}, brandID, month, year)
	if err != nil {
		if errs.IsMissingRelation(err) {
			e.log.Warn("subplot table missing, serving empty list", "brand_id", brandID)
			empty := []types.SubplotContext{}
			e.cache.Set(key, empty, ttlRelationshipsFallback)
			return empty, nil
		}
		return nil, err
	}

	out := make([]types.SubplotContext, 0, len(rows))
	for _, row := range rows {
		out = append(out, storyrepo.SubplotContextOf(row))
	}
	e.cache.Set(key, out, ttlSubplots)
	return out, nil
}

// subplotForDate returns the subplot covering the ISO week of date, with its
// active hook resolved. Nil when the month has no subplot for that week.
func (e *Engine) subplotForDate(ctx context.Context, brandID uuid.UUID, date time.Time) (*types.SubplotContext, error) {
	subplots, err := e.GetWeeklySubplots(ctx, brandID, int(date.Month()), date.Year())
	if err != nil {
		return nil, err
	}
	if len(subplots) == 0 {
		return nil, nil
	}

	week := weekOfMonth(date)
	var chosen *types.SubplotContext
	for i := range subplots {
		if subplots[i].WeekNumber == week {
			chosen = &subplots[i]
			break
		}
	}
	if chosen == nil {
		// Clamp to the nearest numbered week so month edges still get a story.
		idx := week - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(subplots) {
			idx = len(subplots) - 1
		}
		chosen = &subplots[idx]
	}

	cp := *chosen
	cp.ActiveHook = ResolveActiveHook(cp.Hooks, date)
	return &cp, nil
}

// weekOfMonth numbers a date's week within its month, 1-based, weeks
// starting on Monday to match the subplot planner's output.
func weekOfMonth(date time.Time) int {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	offset := int(first.Weekday())
	if offset == 0 {
		offset = 7 // Sunday
	}
	return (date.Day()+offset-2)/7 + 1
}
