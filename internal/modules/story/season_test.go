package story

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/andora-ai/andora-backend/internal/domain"
)

func TestGetMonthlyContext(t *testing.T) {
	fx, brandID, _ := sceneFixture(t)
	e := fx.engine(t)

	bundle, err := e.GetMonthlyContext(context.Background(), brandID, 3, 2026)
	if err != nil {
		t.Fatalf("GetMonthlyContext: %v", err)
	}
	if bundle.Identity.Name != "Acme" {
		t.Fatalf("identity = %+v", bundle.Identity)
	}
	if bundle.Theme == nil || bundle.Theme.Title != "Building in public" {
		t.Fatalf("theme = %v", bundle.Theme)
	}
	if len(bundle.Subplots) != 1 {
		t.Fatalf("subplots = %d", len(bundle.Subplots))
	}
	if len(bundle.Events) != 2 {
		t.Fatalf("events = %d", len(bundle.Events))
	}
	if len(bundle.Characters) != 2 {
		t.Fatalf("characters = %d", len(bundle.Characters))
	}

	// Second read is served from the bundle cache.
	before := fx.brands.calls
	if _, err := e.GetMonthlyContext(context.Background(), brandID, 3, 2026); err != nil {
		t.Fatal(err)
	}
	if fx.brands.calls != before {
		t.Fatal("cached bundle re-fetched its parts")
	}
}

func TestGetMonthlyContextMissingTheme(t *testing.T) {
	fx, brandID, _ := sceneFixture(t)
	fx.themes.theme = nil
	e := fx.engine(t)

	bundle, err := e.GetMonthlyContext(context.Background(), brandID, 4, 2026)
	if err != nil {
		t.Fatalf("a month without a theme must not fail the bundle: %v", err)
	}
	if bundle.Theme != nil {
		t.Fatalf("theme = %v, want nil", bundle.Theme)
	}
}

func TestGetSeasonTimelineSpan(t *testing.T) {
	fx, brandID, wednesday := sceneFixture(t)
	e := fx.engine(t)

	timeline, err := e.GetSeasonTimeline(context.Background(), brandID, wednesday)
	if err != nil {
		t.Fatalf("GetSeasonTimeline: %v", err)
	}
	if len(timeline.Months) != 7 {
		t.Fatalf("months = %d, want anchor plus three each way", len(timeline.Months))
	}
	if timeline.Months[0].Month != 12 || timeline.Months[0].Year != 2025 {
		t.Fatalf("first month = %d/%d, want 12/2025", timeline.Months[0].Month, timeline.Months[0].Year)
	}
	if timeline.Months[3].Month != 3 || timeline.Months[3].Year != 2026 {
		t.Fatalf("anchor month = %d/%d", timeline.Months[3].Month, timeline.Months[3].Year)
	}
	if timeline.Months[6].Month != 6 {
		t.Fatalf("last month = %d, want 6", timeline.Months[6].Month)
	}
	if timeline.EventsVersion == "" {
		t.Fatal("timeline must carry the events-version fingerprint")
	}
	if len(timeline.Months[3].Events) != 2 {
		t.Fatalf("anchor month events = %d", len(timeline.Months[3].Events))
	}
}

func TestSeasonBundleKeyedByEventsVersion(t *testing.T) {
	fx, brandID, wednesday := sceneFixture(t)
	e := fx.engine(t)

	first, err := e.GetSeasonTimeline(context.Background(), brandID, wednesday)
	if err != nil {
		t.Fatal(err)
	}

	// An event write changes the fingerprint once the cached version entry
	// lapses; simulate by adding an event and dropping the version key.
	fx.events.events = append(fx.events.events, &types.CalendarEvent{
		ID: uuid.New(), BrandID: brandID, Title: "New webinar",
		Date:      wednesday.AddDate(0, 1, 0),
		UpdatedAt: time.Now(),
	})
	e.cache.InvalidatePrefix(keyEventsVersion(brandID))
	e.cache.InvalidatePrefix(brandPrefix(brandID) + "events:")

	second, err := e.GetSeasonTimeline(context.Background(), brandID, wednesday)
	if err != nil {
		t.Fatal(err)
	}
	if second.EventsVersion == first.EventsVersion {
		t.Fatal("event writes must change the fingerprint")
	}
	var total int
	for _, m := range second.Months {
		total += len(m.Events)
	}
	if total != 3 {
		t.Fatalf("stale timeline served: %d events, want 3", total)
	}
}

func TestGetSeasonPlotContext(t *testing.T) {
	fx, brandID, wednesday := sceneFixture(t)
	e := fx.engine(t)

	bundle, err := e.GetSeasonPlotContext(context.Background(), brandID, wednesday)
	if err != nil {
		t.Fatalf("GetSeasonPlotContext: %v", err)
	}
	if len(bundle.Timeline.Months) != 7 {
		t.Fatalf("timeline months = %d", len(bundle.Timeline.Months))
	}
	if len(bundle.Characters) != 2 {
		t.Fatalf("characters = %d", len(bundle.Characters))
	}
}

func TestGetWeeklySubplotContext(t *testing.T) {
	fx, brandID, _ := sceneFixture(t)
	e := fx.engine(t)

	bundle, err := e.GetWeeklySubplotContext(context.Background(), brandID, 3, 2026, 2)
	if err != nil {
		t.Fatalf("GetWeeklySubplotContext: %v", err)
	}
	if bundle.Subplot == nil || bundle.Subplot.WeekNumber != 2 {
		t.Fatalf("subplot = %v, want the week-2 arc", bundle.Subplot)
	}

	bundle, err = e.GetWeeklySubplotContext(context.Background(), brandID, 3, 2026, 4)
	if err != nil {
		t.Fatal(err)
	}
	if bundle.Subplot != nil {
		t.Fatalf("subplot = %v, want nil for an unplanned week", bundle.Subplot)
	}
}

func TestGetCalendarBatchContext(t *testing.T) {
	fx, brandID, _ := sceneFixture(t)
	e := fx.engine(t)

	bundle, err := e.GetCalendarBatchContext(context.Background(), brandID, 3, 2026)
	if err != nil {
		t.Fatalf("GetCalendarBatchContext: %v", err)
	}
	if len(bundle.Subplots) != 1 || len(bundle.Events) != 2 {
		t.Fatalf("bundle = %+v", bundle)
	}
	if len(bundle.RecentPerfectContent) != 1 {
		t.Fatalf("memories = %d, want the cross-channel perfect item", len(bundle.RecentPerfectContent))
	}
}

func TestGetCharacterGenerationContextIncludesMuted(t *testing.T) {
	fx, brandID, _ := sceneFixture(t)
	fx.characters.cast[1].IsMuted = true
	e := fx.engine(t)

	bundle, err := e.GetCharacterGenerationContext(context.Background(), brandID)
	if err != nil {
		t.Fatalf("GetCharacterGenerationContext: %v", err)
	}
	if len(bundle.ExistingCharacters) != 2 {
		t.Fatalf("roster = %d, want muted members included so regeneration avoids duplicates", len(bundle.ExistingCharacters))
	}
}

func TestInvalidateBrandScopesAllPrefixes(t *testing.T) {
	fx, brandID, wednesday := sceneFixture(t)
	e := fx.engine(t)

	otherBrand := uuid.New()
	e.cache.Set(keyIdentity(otherBrand), 1, ttlIdentity)

	if _, err := e.GetSceneContext(context.Background(), SceneRequest{
		BrandID: brandID, Date: wednesday, Channel: "instagram", Format: "reel",
	}); err != nil {
		t.Fatal(err)
	}
	if e.GetCacheStats().Size < 2 {
		t.Fatal("composition should have populated the cache")
	}

	n := e.InvalidateBrand(brandID)
	if n == 0 {
		t.Fatal("invalidation dropped nothing")
	}
	if got := e.GetCacheStats().Size; got != 1 {
		t.Fatalf("%d entries survived, want only the other brand's", got)
	}
	if _, ok := e.cache.Get(keyIdentity(otherBrand)); !ok {
		t.Fatal("other brand's entry must survive")
	}

	if e.InvalidateBrand(uuid.Nil) != 0 {
		t.Fatal("nil brand id must be a no-op")
	}
}

func TestGetWeeklySubplotsMissingTableDegrades(t *testing.T) {
	fx := newFixture()
	fx.subplots.err = errMissingTable
	e := fx.engine(t)
	brandID := uuid.New()

	subplots, err := e.GetWeeklySubplots(context.Background(), brandID, 3, 2026)
	if err != nil {
		t.Fatalf("missing subplot table must degrade: %v", err)
	}
	if len(subplots) != 0 {
		t.Fatalf("subplots = %v", subplots)
	}
	if _, err := e.GetWeeklySubplots(context.Background(), brandID, 3, 2026); err != nil {
		t.Fatal(err)
	}
	if fx.subplots.calls != 1 {
		t.Fatalf("repo calls = %d, want the empty fallback cached", fx.subplots.calls)
	}
}

func TestMalformedHooksColumnDegrades(t *testing.T) {
	fx := newFixture()
	brandID := uuid.New()
	fx.subplots.subplots = []*types.WeeklySubplot{{
		ID:         uuid.New(),
		BrandID:    brandID,
		WeekNumber: 1,
		Title:      "Broken arc",
		Hooks:      datatypes.JSON(`{definitely not json`),
	}}
	e := fx.engine(t)

	subplots, err := e.GetWeeklySubplots(context.Background(), brandID, 3, 2026)
	if err != nil {
		t.Fatalf("malformed hooks must not fail the read: %v", err)
	}
	if len(subplots) != 1 {
		t.Fatalf("subplots = %d", len(subplots))
	}
	if len(subplots[0].Hooks) != 0 {
		t.Fatalf("hooks = %v, want empty on parse failure", subplots[0].Hooks)
	}
}
