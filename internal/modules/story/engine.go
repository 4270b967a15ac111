package story

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andora-ai/andora-backend/internal/clients/openai"
	redisclient "github.com/andora-ai/andora-backend/internal/clients/redis"
	brandrepo "github.com/andora-ai/andora-backend/internal/data/repos/brand"
	knowledgerepo "github.com/andora-ai/andora-backend/internal/data/repos/knowledge"
	storyrepo "github.com/andora-ai/andora-backend/internal/data/repos/story"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

// TTLs per data class: cheaper-to-recompute / more volatile data expires
// sooner.
const (
	ttlIdentity              = 24 * time.Hour
	ttlCharacters            = 6 * time.Hour
	ttlRelationships         = time.Hour
	ttlRelationshipsFallback = 30 * time.Minute
	ttlEvents                = time.Hour
	ttlTheme                 = 6 * time.Hour
	ttlSubplots              = 3 * time.Hour
	ttlPerfectContent        = 30 * time.Minute
	ttlPerfectFallback       = 15 * time.Minute
	ttlMonthlyBundle         = 30 * time.Minute
	ttlSeasonBundle          = 15 * time.Minute
	ttlEventsVersion         = 5 * time.Minute
	ttlKnowledgeFallback     = 15 * time.Minute

	defaultSweepInterval = 5 * time.Minute
)

// Engine is the brand context engine: the single façade generation agents
// call to obtain everything needed to write one piece of content. All
// retrieval, caching and selection happens in here.
type Engine struct {
	log *logger.Logger

	brands        brandrepo.BrandRepo
	characters    brandrepo.CharacterRepo
	relationships brandrepo.RelationshipRepo
	events        brandrepo.EventRepo
	themes        storyrepo.ThemeRepo
	subplots      storyrepo.SubplotRepo
	content       storyrepo.ContentRepo
	documents     knowledgerepo.DocumentRepo

	ai    openai.Client
	bus   redisclient.InvalidationBus
	cache *ContextCache
}

// Options tunes engine behavior; zero values fall back to defaults. Bus is
// optional: when set, knowledge ingestion broadcasts invalidations to peer
// processes.
type Options struct {
	SweepInterval time.Duration
	Bus           redisclient.InvalidationBus
}

type Repos struct {
	Brands        brandrepo.BrandRepo
	Characters    brandrepo.CharacterRepo
	Relationships brandrepo.RelationshipRepo
	Events        brandrepo.EventRepo
	Themes        storyrepo.ThemeRepo
	Subplots      storyrepo.SubplotRepo
	Content       storyrepo.ContentRepo
	Documents     knowledgerepo.DocumentRepo
}

func NewEngine(repos Repos, ai openai.Client, cache *ContextCache, baseLog *logger.Logger, opts Options) (*Engine, error) {
	if baseLog == nil {
		return nil, fmt.Errorf("logger required")
	}
	if repos.Brands == nil || repos.Characters == nil || repos.Relationships == nil ||
		repos.Events == nil || repos.Themes == nil || repos.Subplots == nil ||
		repos.Content == nil || repos.Documents == nil {
		return nil, fmt.Errorf("all repos required")
	}
	if cache == nil {
		cache = NewContextCache(baseLog)
	}
	interval := opts.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	e := &Engine{
		log:           baseLog.With("engine", "BrandContextEngine"),
		brands:        repos.Brands,
		characters:    repos.Characters,
		relationships: repos.Relationships,
		events:        repos.Events,
		themes:        repos.Themes,
		subplots:      repos.Subplots,
		content:       repos.Content,
		documents:     repos.Documents,
		ai:            ai,
		bus:           opts.Bus,
		cache:         cache,
	}
	cache.StartSweeper(interval)
	return e, nil
}

// Close stops the background cache sweeper.
func (e *Engine) Close() {
	e.cache.StopSweeper()
}

func (e *Engine) GetCacheStats() CacheStats {
	return e.cache.Stats()
}

// InvalidateBrand drops every cache entry scoped to the brand. Write-side
// collaborators must call this after any mutation to brand, character,
// event, theme or subplot records.
func (e *Engine) InvalidateBrand(brandID uuid.UUID) int {
	if brandID == uuid.Nil {
		return 0
	}
	n := e.cache.InvalidatePrefix(brandPrefix(brandID))
	e.log.Debug("brand cache invalidated", "brand_id", brandID, "entries", n)
	return n
}

// Cache keys. Every key for a brand shares brandPrefix so InvalidateBrand
// covers all scopes with one pass.

func brandPrefix(brandID uuid.UUID) string {
	return "brand:" + brandID.String() + ":"
}

func keyIdentity(brandID uuid.UUID) string {
	return brandPrefix(brandID) + "identity"
}

func keyCharacters(brandID uuid.UUID, includeMuted bool) string {
	scope := "active"
	if includeMuted {
		scope = "all"
	}
	return brandPrefix(brandID) + "characters:" + scope
}

func keyRelationships(brandID uuid.UUID) string {
	return brandPrefix(brandID) + "relationships"
}

func keyEvents(brandID uuid.UUID, from, to time.Time) string {
	return fmt.Sprintf("%sevents:%s:%s", brandPrefix(brandID), from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func keyEventsVersion(brandID uuid.UUID) string {
	return brandPrefix(brandID) + "events-version"
}

func keyTheme(brandID uuid.UUID, month, year int) string {
	return fmt.Sprintf("%stheme:%04d-%02d", brandPrefix(brandID), year, month)
}

func keySubplots(brandID uuid.UUID, month, year int) string {
	return fmt.Sprintf("%ssubplots:%04d-%02d", brandPrefix(brandID), year, month)
}

func keyPerfectContent(brandID uuid.UUID, channel, format string) string {
	return fmt.Sprintf("%sperfect:%s:%s", brandPrefix(brandID), channel, format)
}

func keyMonthly(brandID uuid.UUID, month, year int) string {
	return fmt.Sprintf("%smonthly:%04d-%02d", brandPrefix(brandID), year, month)
}

func keySeason(brandID uuid.UUID, anchor time.Time, eventsVersion string) string {
	return fmt.Sprintf("%sseason:%s:%s", brandPrefix(brandID), anchor.Format("2006-01-02"), eventsVersion)
}

func keySeasonPlot(brandID uuid.UUID, anchor time.Time, eventsVersion string) string {
	return fmt.Sprintf("%sseason-plot:%s:%s", brandPrefix(brandID), anchor.Format("2006-01-02"), eventsVersion)
}

func keyWeekly(brandID uuid.UUID, month, year, week int) string {
	return fmt.Sprintf("%sweekly:%04d-%02d:w%d", brandPrefix(brandID), year, month, week)
}

func keyCalendarBatch(brandID uuid.UUID, month, year int) string {
	return fmt.Sprintf("%scalendar:%04d-%02d", brandPrefix(brandID), year, month)
}

func keyKnowledgeMiss(brandID uuid.UUID) string {
	return brandPrefix(brandID) + "knowledge-miss"
}
