package story

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/observability"
)

// SceneRequest identifies one piece of content to contextualize.
type SceneRequest struct {
	BrandID uuid.UUID
	Date    time.Time
	Channel string
	Format  string
}

// GetSceneContext assembles everything a generation agent needs to write one
// scene: identity, cast pairing, the day's event, the week's subplot with its
// active hook, recent perfect-content memories, knowledge snippets, and
// channel guidance. The six source fetches run concurrently.
func (e *Engine) GetSceneContext(ctx context.Context, req SceneRequest) (*types.SceneContext, error) {
	ctx, span := observability.Tracer().Start(ctx, "engine.GetSceneContext")
	defer span.End()
	span.SetAttributes(
		attribute.String("brand_id", req.BrandID.String()),
		attribute.String("channel", req.Channel),
		attribute.String("format", req.Format),
	)

	var (
		identity types.BrandIdentity
		cast     []*types.Character
		edges    []*types.CharacterRelationship
		event    *types.CalendarEvent
		subplot  *types.SubplotContext
		memories []types.PerfectContentMemory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		identity, err = e.GetBrandIdentity(gctx, req.BrandID)
		return err
	})
	g.Go(func() (err error) {
		cast, err = e.GetCharacters(gctx, req.BrandID, false)
		return err
	})
	g.Go(func() (err error) {
		edges, err = e.GetRelationships(gctx, req.BrandID)
		return err
	})
	g.Go(func() (err error) {
		event, err = e.eventForDate(gctx, req.BrandID, req.Date)
		return err
	})
	g.Go(func() (err error) {
		subplot, err = e.subplotForDate(gctx, req.BrandID, req.Date)
		return err
	})
	g.Go(func() (err error) {
		memories, err = e.GetRecentPerfectContent(gctx, req.BrandID, req.Channel, req.Format)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pair := SelectScenePair(cast, edges, req.Date)

	snippets, err := e.QueryKnowledge(ctx, req.BrandID, sceneQueryText(req, identity, subplot, event), KnowledgeQuery{})
	if err != nil {
		return nil, err
	}

	return &types.SceneContext{
		Identity:             identity,
		Date:                 req.Date,
		Channel:              req.Channel,
		Format:               req.Format,
		Character:            pair.Primary,
		SecondaryCharacter:   pair.Secondary,
		RelationshipContext:  pair.Relationship,
		Event:                event,
		Subplot:              subplot,
		RecentPerfectContent: memories,
		KnowledgeSnippets:    snippets,
		Guidance:             BuildChannelGuidance(req.Channel, req.Format),
	}, nil
}

// sceneQueryText joins the scene's salient strings into the retrieval query,
// skipping whatever is missing. An empty result means retrieval is skipped.
func sceneQueryText(req SceneRequest, identity types.BrandIdentity, subplot *types.SubplotContext, event *types.CalendarEvent) string {
	parts := make([]string, 0, 7)
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	add(req.Channel)
	add(req.Format)
	add(identity.BuyerProfile)
	add(identity.Archetype)
	if subplot != nil {
		add(subplot.Title)
		if subplot.ActiveHook != nil {
			add(subplot.ActiveHook.Hook)
		}
	}
	if event != nil {
		add(event.Title)
	}
	return strings.Join(parts, " ")
}
