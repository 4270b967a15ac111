package story

import (
	"testing"
	"time"

	types "github.com/andora-ai/andora-backend/internal/domain"
)

func TestResolveActiveHookExactWeekdayMatch(t *testing.T) {
	hooks := []types.NextSceneHook{
		{Sequence: 1, DayOfWeek: intPtr(3), Hook: "midweek reveal"},
		{Sequence: 2, Hook: "anytime filler"},
	}

	wednesday := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	got := ResolveActiveHook(hooks, wednesday)
	if got == nil || got.Hook != "midweek reveal" {
		t.Fatalf("got %v, want the day_of_week=3 hook on a Wednesday", got)
	}
}

func TestResolveActiveHookClampedFallback(t *testing.T) {
	hooks := []types.NextSceneHook{
		{Sequence: 1, DayOfWeek: intPtr(3), Hook: "midweek reveal"},
		{Sequence: 2, Hook: "anytime filler"},
	}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := ResolveActiveHook(hooks, monday)
	if got == nil {
		t.Fatal("fallback must always return a hook for a non-empty list")
	}
	// Monday is index 0 of the sequence-ordered list.
	if got.Hook != "midweek reveal" {
		t.Fatalf("got %q, want the lowest-sequence hook", got.Hook)
	}

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	got = ResolveActiveHook(hooks, sunday)
	if got == nil || got.Hook != "anytime filler" {
		t.Fatalf("got %v, want the index clamped to the last hook on a Sunday", got)
	}
}

func TestResolveActiveHookUnsequencedSortLast(t *testing.T) {
	hooks := []types.NextSceneHook{
		{Hook: "unsequenced"},
		{Sequence: 2, Hook: "second"},
		{Sequence: 1, Hook: "first"},
	}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := ResolveActiveHook(hooks, monday)
	if got == nil || got.Hook != "first" {
		t.Fatalf("got %v, want sequence 1 at index 0", got)
	}

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	got = ResolveActiveHook(hooks, sunday)
	if got == nil || got.Hook != "unsequenced" {
		t.Fatalf("got %v, want the unsequenced hook sorted last", got)
	}
}

func TestResolveActiveHookEmptyList(t *testing.T) {
	if got := ResolveActiveHook(nil, time.Now()); got != nil {
		t.Fatalf("got %v, want nil for an empty hook list", got)
	}
}

func TestIsoWeekday(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 1},  // Monday
		{time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), 3},  // Wednesday
		{time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), 6},  // Saturday
		{time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), 7},  // Sunday
	}
	for _, tc := range cases {
		if got := isoWeekday(tc.date); got != tc.want {
			t.Errorf("isoWeekday(%s) = %d, want %d", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}
