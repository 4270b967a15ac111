package story

import (
	"sort"
	"time"

	types "github.com/andora-ai/andora-backend/internal/domain"
)

// ResolveActiveHook picks the hook a scene on date should build on: an exact
// weekday match when one is declared, otherwise a positional fallback over
// the sequence-ordered list. Empty lists yield no hook.
func ResolveActiveHook(hooks []types.NextSceneHook, date time.Time) *types.NextSceneHook {
	if len(hooks) == 0 {
		return nil
	}

	weekday := isoWeekday(date)
	for i := range hooks {
		if hooks[i].DayOfWeek != nil && *hooks[i].DayOfWeek == weekday {
			h := hooks[i]
			return &h
		}
	}

	ordered := make([]types.NextSceneHook, len(hooks))
	copy(ordered, hooks)
	sort.SliceStable(ordered, func(i, j int) bool {
		// Unsequenced hooks sort last.
		si, sj := ordered[i].Sequence, ordered[j].Sequence
		if si <= 0 {
			return false
		}
		if sj <= 0 {
			return true
		}
		return si < sj
	})

	idx := weekday - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ordered) {
		idx = len(ordered) - 1
	}
	h := ordered[idx]
	return &h
}

// isoWeekday maps time.Weekday to ISO numbering, Monday=1 through Sunday=7.
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
