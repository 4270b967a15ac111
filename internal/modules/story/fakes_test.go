package story

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

// errMissingTable mimics the driver error for a relation that was never
// migrated.
var errMissingTable = errors.New(`ERROR: relation "knowledge_document" does not exist (SQLSTATE 42P01)`)

type fakeBrandRepo struct {
	brand *types.Brand
	err   error
	calls int
}

func (f *fakeBrandRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Brand, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.brand == nil {
		return nil, errs.ErrNotFound
	}
	return f.brand, nil
}

type fakeCharacterRepo struct {
	cast  []*types.Character
	err   error
	calls int
}

func (f *fakeCharacterRepo) ListByBrand(_ dbctx.Context, brandID uuid.UUID, includeMuted bool) ([]*types.Character, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if includeMuted {
		return f.cast, nil
	}
	out := make([]*types.Character, 0, len(f.cast))
	for _, c := range f.cast {
		if !c.IsMuted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCharacterRepo) SetMuted(_ dbctx.Context, id uuid.UUID, muted bool) error {
	for _, c := range f.cast {
		if c.ID == id {
			c.IsMuted = muted
		}
	}
	return nil
}

func (f *fakeCharacterRepo) DeleteNonPerfectByBrand(_ dbctx.Context, brandID uuid.UUID) (int64, error) {
	kept := f.cast[:0]
	var n int64
	for _, c := range f.cast {
		if c.IsPerfect {
			kept = append(kept, c)
		} else {
			n++
		}
	}
	f.cast = kept
	return n, nil
}

type fakeRelationshipRepo struct {
	edges []*types.CharacterRelationship
	err   error
	calls int
}

func (f *fakeRelationshipRepo) ListByBrand(_ dbctx.Context, brandID uuid.UUID) ([]*types.CharacterRelationship, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.edges, nil
}

type fakeEventRepo struct {
	events []*types.CalendarEvent
	err    error
	calls  int
}

func (f *fakeEventRepo) ListInRange(_ dbctx.Context, brandID uuid.UUID, from, to time.Time) ([]*types.CalendarEvent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.CalendarEvent, 0, len(f.events))
	for _, ev := range f.events {
		if !ev.Date.Before(from) && !ev.Date.After(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Upsert(_ dbctx.Context, ev *types.CalendarEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeEventRepo) Version(_ dbctx.Context, brandID uuid.UUID) (int64, time.Time, error) {
	var latest time.Time
	for _, ev := range f.events {
		if ev.UpdatedAt.After(latest) {
			latest = ev.UpdatedAt
		}
	}
	return int64(len(f.events)), latest, nil
}

type fakeThemeRepo struct {
	theme *types.MonthlyTheme
	err   error
	calls int
}

func (f *fakeThemeRepo) GetByMonth(_ dbctx.Context, brandID uuid.UUID, month, year int) (*types.MonthlyTheme, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.theme == nil {
		return nil, errs.ErrNotFound
	}
	return f.theme, nil
}

func (f *fakeThemeRepo) Upsert(_ dbctx.Context, theme *types.MonthlyTheme) error {
	f.theme = theme
	return nil
}

type fakeSubplotRepo struct {
	subplots []*types.WeeklySubplot
	err      error
	calls    int
}

func (f *fakeSubplotRepo) ListByTheme(_ dbctx.Context, themeID uuid.UUID) ([]*types.WeeklySubplot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.subplots, nil
}

func (f *fakeSubplotRepo) ListByBrandMonth(_ dbctx.Context, brandID uuid.UUID, month, year int) ([]*types.WeeklySubplot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.subplots, nil
}

type fakeContentRepo struct {
	items []*types.ContentItem
	err   error
	calls int
}

func (f *fakeContentRepo) ListRecentPerfect(_ dbctx.Context, brandID uuid.UUID, channel, format string, limit int) ([]*types.ContentItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.ContentItem, 0, len(f.items))
	for _, item := range f.items {
		if channel != "" && item.Channel != channel {
			continue
		}
		if format != "" && item.Format != format {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeContentRepo) MarkQuality(_ dbctx.Context, id uuid.UUID, quality string) error {
	for _, item := range f.items {
		if item.ID == id {
			item.Quality = quality
		}
	}
	return nil
}

type fakeDocumentRepo struct {
	docs  []*types.KnowledgeDocument
	err   error
	calls int
}

func (f *fakeDocumentRepo) ListCandidates(_ dbctx.Context, brandID uuid.UUID, sourceTypes []string, limit int) ([]*types.KnowledgeDocument, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *fakeDocumentRepo) UpsertTracked(_ dbctx.Context, doc *types.KnowledgeDocument) error {
	for i, existing := range f.docs {
		if existing.SourceType == doc.SourceType &&
			existing.SourceID != nil && doc.SourceID != nil && *existing.SourceID == *doc.SourceID {
			f.docs[i] = doc
			return nil
		}
	}
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeDocumentRepo) Insert(_ dbctx.Context, doc *types.KnowledgeDocument) error {
	f.docs = append(f.docs, doc)
	return nil
}

// fakeAI returns canned vectors per input text, defaulting to vec when the
// text has no dedicated entry.
type fakeAI struct {
	vec     []float32
	byText  map[string][]float32
	failFor map[string]bool
	calls   int
}

func (f *fakeAI) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, 0, len(inputs))
	for _, in := range inputs {
		if f.failFor[in] {
			return nil, errors.New("embedding backend unavailable")
		}
		if v, ok := f.byText[in]; ok {
			out = append(out, v)
			continue
		}
		out = append(out, f.vec)
	}
	return out, nil
}

func (f *fakeAI) GenerateText(context.Context, string, string) (string, int, error) {
	return "", 0, nil
}

func (f *fakeAI) GenerateJSON(context.Context, string, string, string, map[string]any) (map[string]any, int, error) {
	return nil, 0, nil
}

type testFixture struct {
	brands        *fakeBrandRepo
	characters    *fakeCharacterRepo
	relationships *fakeRelationshipRepo
	events        *fakeEventRepo
	themes        *fakeThemeRepo
	subplots      *fakeSubplotRepo
	content       *fakeContentRepo
	documents     *fakeDocumentRepo
	ai            *fakeAI
}

func newFixture() *testFixture {
	return &testFixture{
		brands:        &fakeBrandRepo{},
		characters:    &fakeCharacterRepo{},
		relationships: &fakeRelationshipRepo{},
		events:        &fakeEventRepo{},
		themes:        &fakeThemeRepo{},
		subplots:      &fakeSubplotRepo{},
		content:       &fakeContentRepo{},
		documents:     &fakeDocumentRepo{},
		ai:            &fakeAI{vec: []float32{1, 0, 0}},
	}
}

func (fx *testFixture) engine(t *testing.T) *Engine {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	e, err := NewEngine(Repos{
		Brands:        fx.brands,
		Characters:    fx.characters,
		Relationships: fx.relationships,
		Events:        fx.events,
		Themes:        fx.themes,
		Subplots:      fx.subplots,
		Content:       fx.content,
		Documents:     fx.documents,
	}, fx.ai, nil, log, Options{SweepInterval: time.Hour})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func mkCharacter(name string, perfect bool) *types.Character {
	return &types.Character{ID: uuid.New(), Name: name, IsPerfect: perfect}
}

func mkEdge(from, to uuid.UUID, relType string, collab, tension int) *types.CharacterRelationship {
	return &types.CharacterRelationship{
		ID:                    uuid.New(),
		CharacterID:           from,
		RelatedCharacterID:    to,
		RelationshipType:      relType,
		CollaborationStrength: &collab,
		TensionLevel:          &tension,
	}
}

func intPtr(n int) *int { return &n }
