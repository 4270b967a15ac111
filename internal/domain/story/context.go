package story

import (
	"time"

	"github.com/google/uuid"
	brandtypes "github.com/andora-ai/andora-backend/internal/domain/brand"
)

// BrandIdentity is the read-only identity projection of one brand row.
// Derived fields (Voice, Archetype, BuyerProfile) are resolved through
// explicit fallback chains at composition time.
type BrandIdentity struct {
	BrandID      uuid.UUID `json:"brand_id"`
	Name         string    `json:"name"`
	Tagline      string    `json:"tagline"`
	Mission      string    `json:"mission"`
	Voice        string    `json:"voice"`
	Tone         string    `json:"tone"`
	Personality  []string  `json:"personality"`
	Values       []string  `json:"values"`
	Archetype    string    `json:"archetype"`
	BuyerProfile string    `json:"buyer_profile"`
	Audience     string    `json:"audience"`
	HQLocation   string    `json:"hq_location"`

	ArcTheme      string `json:"arc_theme,omitempty"`
	ArcConflict   string `json:"arc_conflict,omitempty"`
	ArcResolution string `json:"arc_resolution,omitempty"`
}

// CharacterBrief is the minimal cast projection used by planning bundles.
type CharacterBrief struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Archetype string    `json:"archetype"`
	WorkMode  string    `json:"work_mode"`
	IsPerfect bool      `json:"is_perfect"`
}

// RelationshipContext describes the chosen primary/secondary pairing.
type RelationshipContext struct {
	RelationshipType string `json:"relationship_type"`
	Summary          string `json:"summary"`
}

// SubplotContext is a subplot with its JSON fields parsed and the hook
// resolved for the requested date.
type SubplotContext struct {
	ID           uuid.UUID       `json:"id"`
	WeekNumber   int             `json:"week_number"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	CharacterIDs []uuid.UUID     `json:"character_ids"`
	EventIDs     []uuid.UUID     `json:"event_ids"`
	Hooks        []NextSceneHook `json:"hooks"`
	ActiveHook   *NextSceneHook  `json:"active_hook,omitempty"`
}

// PerfectContentMemory is a compact summary of a previously approved content
// item, used to keep new scenes consistent with what already worked.
type PerfectContentMemory struct {
	Date         time.Time   `json:"date"`
	Channel      string      `json:"channel"`
	Format       string      `json:"format"`
	Summary      string      `json:"summary"`
	Emotion      string      `json:"emotion"`
	CallToAction string      `json:"call_to_action"`
	CharacterIDs []uuid.UUID `json:"character_ids"`
}

// ContextSnippet is one similarity-ranked knowledge excerpt.
type ContextSnippet struct {
	ID         uuid.UUID `json:"id"`
	Summary    string    `json:"summary"`
	Content    string    `json:"content"`
	SourceType string    `json:"source_type"`
	SourceID   *string   `json:"source_id,omitempty"`
	Score      float64   `json:"score"`
}

// ChannelGuidance is the static per-channel writing profile.
type ChannelGuidance struct {
	Channel        string   `json:"channel"`
	Medium         string   `json:"medium"`
	AudienceFocus  string   `json:"audience_focus"`
	SuccessSignals []string `json:"success_signals"`
	ToneGuidelines []string `json:"tone_guidelines"`
	Cadence        string   `json:"cadence,omitempty"`
}

// SceneContext is everything the generation agent needs to write one scene.
type SceneContext struct {
	Identity BrandIdentity `json:"identity"`
	Date     time.Time     `json:"date"`
	Channel  string        `json:"channel"`
	Format   string        `json:"format"`

	Character           *brandtypes.Character `json:"character,omitempty"`
	SecondaryCharacter  *brandtypes.Character `json:"secondary_character,omitempty"`
	RelationshipContext *RelationshipContext  `json:"relationship_context,omitempty"`

	Event   *brandtypes.CalendarEvent `json:"event,omitempty"`
	Subplot *SubplotContext           `json:"subplot,omitempty"`

	RecentPerfectContent []PerfectContentMemory `json:"recent_perfect_content"`
	KnowledgeSnippets    []ContextSnippet       `json:"knowledge_snippets"`

	Guidance ChannelGuidance `json:"guidance"`
}

// MonthlyContext is the month-scoped composite bundle.
type MonthlyContext struct {
	Identity   BrandIdentity              `json:"identity"`
	Month      int                        `json:"month"`
	Year       int                        `json:"year"`
	Theme      *MonthlyTheme              `json:"theme,omitempty"`
	Subplots   []SubplotContext           `json:"subplots"`
	Events     []brandtypes.CalendarEvent `json:"events"`
	Characters []CharacterBrief           `json:"characters"`
}

// SeasonMonth is one month of the season timeline.
type SeasonMonth struct {
	Month  int                        `json:"month"`
	Year   int                        `json:"year"`
	Theme  *MonthlyTheme              `json:"theme,omitempty"`
	Events []brandtypes.CalendarEvent `json:"events"`
}

// SeasonTimeline spans three months back and three forward around an anchor
// date. EventsVersion fingerprints the brand's event set so stale timelines
// drop out when events change.
type SeasonTimeline struct {
	Anchor        time.Time     `json:"anchor"`
	EventsVersion string        `json:"events_version"`
	Months        []SeasonMonth `json:"months"`
}

// SeasonPlotContext feeds the season-arc planning phase.
type SeasonPlotContext struct {
	Identity   BrandIdentity    `json:"identity"`
	Timeline   SeasonTimeline   `json:"timeline"`
	Characters []CharacterBrief `json:"characters"`
}

// WeeklySubplotContext feeds the weekly-subplot planning phase.
type WeeklySubplotContext struct {
	Identity   BrandIdentity              `json:"identity"`
	Theme      *MonthlyTheme              `json:"theme,omitempty"`
	WeekNumber int                        `json:"week_number"`
	Subplot    *SubplotContext            `json:"subplot,omitempty"`
	Events     []brandtypes.CalendarEvent `json:"events"`
	Characters []CharacterBrief           `json:"characters"`
}

// CalendarBatchContext feeds batch generation of a month's calendar.
type CalendarBatchContext struct {
	Identity             BrandIdentity              `json:"identity"`
	Month                int                        `json:"month"`
	Year                 int                        `json:"year"`
	Theme                *MonthlyTheme              `json:"theme,omitempty"`
	Subplots             []SubplotContext           `json:"subplots"`
	Events               []brandtypes.CalendarEvent `json:"events"`
	Characters           []CharacterBrief           `json:"characters"`
	RecentPerfectContent []PerfectContentMemory     `json:"recent_perfect_content"`
}

// CharacterGenerationContext feeds cast generation: identity plus the roster
// that already exists, nothing else.
type CharacterGenerationContext struct {
	Identity           BrandIdentity    `json:"identity"`
	ExistingCharacters []CharacterBrief `json:"existing_characters"`
}
