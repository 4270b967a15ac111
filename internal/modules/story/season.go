package story

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
)

const seasonReach = 3 // months each side of the anchor

// GetMonthlyContext bundles everything month-scoped planning needs: identity,
// theme, subplots, events and cast briefs. Cached 30m.
func (e *Engine) GetMonthlyContext(ctx context.Context, brandID uuid.UUID, month, year int) (*types.MonthlyContext, error) {
	key := keyMonthly(brandID, month, year)
	if v, ok := e.cache.Get(key); ok {
		if bundle, ok := v.(*types.MonthlyContext); ok {
			return bundle, nil
		}
	}

	var (
		identity types.BrandIdentity
		theme    *types.MonthlyTheme
		subplots []types.SubplotContext
		events   []*types.CalendarEvent
		cast     []*types.Character
	)
	from, to := monthRange(month, year)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		identity, err = e.GetBrandIdentity(gctx, brandID)
		return err
	})
	g.Go(func() (err error) {
		theme, err = e.optionalTheme(gctx, brandID, month, year)
		return err
	})
	g.Go(func() (err error) {
		subplots, err = e.GetWeeklySubplots(gctx, brandID, month, year)
		return err
	})
	g.Go(func() (err error) {
		events, err = e.GetEventsInRange(gctx, brandID, from, to)
		return err
	})
	g.Go(func() (err error) {
		cast, err = e.GetCharacters(gctx, brandID, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := &types.MonthlyContext{
		Identity:   identity,
		Month:      month,
		Year:       year,
		Theme:      theme,
		Subplots:   subplots,
		Events:     derefEvents(events),
		Characters: briefsOf(cast),
	}
	e.cache.Set(key, bundle, ttlMonthlyBundle)
	return bundle, nil
}

// GetSeasonTimeline spans three months back and three forward around the
// anchor date, one theme+events entry per month. The cache key embeds the
// events-version fingerprint so event edits age out stale timelines without
// a brand-wide flush. Cached 15m.
func (e *Engine) GetSeasonTimeline(ctx context.Context, brandID uuid.UUID, anchor time.Time) (*types.SeasonTimeline, error) {
	version, err := e.eventsVersion(ctx, brandID)
	if err != nil {
		return nil, err
	}
	key := keySeason(brandID, anchor, version)
	if v, ok := e.cache.Get(key); ok {
		if timeline, ok := v.(*types.SeasonTimeline); ok {
			return timeline, nil
		}
	}

	months := make([]types.SeasonMonth, 2*seasonReach+1)
	g, gctx := errgroup.WithContext(ctx)
	for i := range months {
		i := i
		at := anchor.AddDate(0, i-seasonReach, 0)
		month, year := int(at.Month()), at.Year()
		g.Go(func() error {
			theme, err := e.optionalTheme(gctx, brandID, month, year)
			if err != nil {
				return err
			}
			from, to := monthRange(month, year)
			events, err := e.GetEventsInRange(gctx, brandID, from, to)
			if err != nil {
				return err
			}
			months[i] = types.SeasonMonth{
				Month:  month,
				Year:   year,
				Theme:  theme,
				Events: derefEvents(events),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	timeline := &types.SeasonTimeline{
		Anchor:        anchor,
		EventsVersion: version,
		Months:        months,
	}
	e.cache.Set(key, timeline, ttlSeasonBundle)
	return timeline, nil
}

// GetSeasonPlotContext feeds the season-arc planning phase: identity, the
// season timeline and cast briefs, nothing else. Cached 15m per events
// version.
func (e *Engine) GetSeasonPlotContext(ctx context.Context, brandID uuid.UUID, anchor time.Time) (*types.SeasonPlotContext, error) {
	version, err := e.eventsVersion(ctx, brandID)
	if err != nil {
		return nil, err
	}
	key := keySeasonPlot(brandID, anchor, version)
	if v, ok := e.cache.Get(key); ok {
		if bundle, ok := v.(*types.SeasonPlotContext); ok {
			return bundle, nil
		}
	}

	var (
		identity types.BrandIdentity
		timeline *types.SeasonTimeline
		cast     []*types.Character
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		identity, err = e.GetBrandIdentity(gctx, brandID)
		return err
	})
	g.Go(func() (err error) {
		timeline, err = e.GetSeasonTimeline(gctx, brandID, anchor)
		return err
	})
	g.Go(func() (err error) {
		cast, err = e.GetCharacters(gctx, brandID, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := &types.SeasonPlotContext{
		Identity:   identity,
		Timeline:   *timeline,
		Characters: briefsOf(cast),
	}
	e.cache.Set(key, bundle, ttlSeasonBundle)
	return bundle, nil
}

// GetWeeklySubplotContext feeds the weekly-subplot planning phase, scoped to
// one week of one month. Cached 30m.
func (e *Engine) GetWeeklySubplotContext(ctx context.Context, brandID uuid.UUID, month, year, week int) (*types.WeeklySubplotContext, error) {
	key := keyWeekly(brandID, month, year, week)
	if v, ok := e.cache.Get(key); ok {
		if bundle, ok := v.(*types.WeeklySubplotContext); ok {
			return bundle, nil
		}
	}

	var (
		identity types.BrandIdentity
		theme    *types.MonthlyTheme
		subplots []types.SubplotContext
		events   []*types.CalendarEvent
		cast     []*types.Character
	)
	from, to := monthRange(month, year)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		identity, err = e.GetBrandIdentity(gctx, brandID)
		return err
	})
	g.Go(func() (err error) {
		theme, err = e.optionalTheme(gctx, brandID, month, year)
		return err
	})
	g.Go(func() (err error) {
		subplots, err = e.GetWeeklySubplots(gctx, brandID, month, year)
		return err
	})
	g.Go(func() (err error) {
		events, err = e.GetEventsInRange(gctx, brandID, from, to)
		return err
	})
	g.Go(func() (err error) {
		cast, err = e.GetCharacters(gctx, brandID, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var subplot *types.SubplotContext
	for i := range subplots {
		if subplots[i].WeekNumber == week {
			subplot = &subplots[i]
			break
		}
	}

	bundle := &types.WeeklySubplotContext{
		Identity:   identity,
		Theme:      theme,
		WeekNumber: week,
		Subplot:    subplot,
		Events:     derefEvents(events),
		Characters: briefsOf(cast),
	}
	e.cache.Set(key, bundle, ttlMonthlyBundle)
	return bundle, nil
}

// GetCalendarBatchContext feeds batch generation of a whole month's
// calendar: the monthly bundle plus recent perfect-content memories across
// all channels. Cached 30m.
func (e *Engine) GetCalendarBatchContext(ctx context.Context, brandID uuid.UUID, month, year int) (*types.CalendarBatchContext, error) {
	key := keyCalendarBatch(brandID, month, year)
	if v, ok := e.cache.Get(key); ok {
		if bundle, ok := v.(*types.CalendarBatchContext); ok {
			return bundle, nil
		}
	}

	var (
		monthly  *types.MonthlyContext
		memories []types.PerfectContentMemory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthly, err = e.GetMonthlyContext(gctx, brandID, month, year)
		return err
	})
	g.Go(func() (err error) {
		memories, err = e.GetRecentPerfectContent(gctx, brandID, "", "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := &types.CalendarBatchContext{
		Identity:             monthly.Identity,
		Month:                month,
		Year:                 year,
		Theme:                monthly.Theme,
		Subplots:             monthly.Subplots,
		Events:               monthly.Events,
		Characters:           monthly.Characters,
		RecentPerfectContent: memories,
	}
	e.cache.Set(key, bundle, ttlMonthlyBundle)
	return bundle, nil
}

// GetCharacterGenerationContext feeds cast generation: identity and the
// roster that already exists, including muted members so regeneration does
// not duplicate them.
func (e *Engine) GetCharacterGenerationContext(ctx context.Context, brandID uuid.UUID) (*types.CharacterGenerationContext, error) {
	var (
		identity types.BrandIdentity
		cast     []*types.Character
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		identity, err = e.GetBrandIdentity(gctx, brandID)
		return err
	})
	g.Go(func() (err error) {
		cast, err = e.GetCharacters(gctx, brandID, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &types.CharacterGenerationContext{
		Identity:           identity,
		ExistingCharacters: briefsOf(cast),
	}, nil
}

// optionalTheme is the composite-bundle variant of GetMonthlyTheme: a month
// with no theme yet is nil, not an error.
func (e *Engine) optionalTheme(ctx context.Context, brandID uuid.UUID, month, year int) (*types.MonthlyTheme, error) {
	theme, err := e.GetMonthlyTheme(ctx, brandID, month, year)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return theme, nil
}

func monthRange(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func derefEvents(events []*types.CalendarEvent) []types.CalendarEvent {
	out := make([]types.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev != nil {
			out = append(out, *ev)
		}
	}
	return out
}
