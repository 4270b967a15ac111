package story

import (
	"context"

	"github.com/google/uuid"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
)

// GetCharacters returns the brand's roster, cached for 6h per muted-scope.
func (e *Engine) GetCharacters(ctx context.Context, brandID uuid.UUID, includeMuted bool) ([]*types.Character, error) {
	key := keyCharacters(brandID, includeMuted)
	if v, ok := e.cache.Get(key); ok {
		if cast, ok := v.([]*types.Character); ok {
			return cast, nil
		}
	}

	cast, err := e.characters.ListByBrand(dbctx.Context{Ctx: ctx}, brandID, includeMuted)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, cast, ttlCharacters)
	return cast, nil
}

// GetRelationships returns the brand's relationship edges, cached for 1h.
// A missing relationship table degrades to an empty graph cached for 30m so
// a broken dependency is not hammered on every read.
func (e *Engine) GetRelationships(ctx context.Context, brandID uuid.UUID) ([]*types.CharacterRelationship, error) {
	key := keyRelationships(brandID)
	if v, ok := e.cache.Get(key); ok {
		if edges, ok := v.([]*types.CharacterRelationship); ok {
			return edges, nil
		}
	}

	edges, err := e.relationships.ListByBrand(dbctx.Context{Ctx: ctx}, brandID)
	if err != nil {
		if errs.IsMissingRelation(err) {
			e.log.Warn("relationship table missing, serving empty graph", "brand_id", brandID)
			edges = []*types.CharacterRelationship{}
			e.cache.Set(key, edges, ttlRelationshipsFallback)
			return edges, nil
		}
		return nil, err
	}
	e.cache.Set(key, edges, ttlRelationships)
	return edges, nil
}

func briefsOf(cast []*types.Character) []types.CharacterBrief {
	out := make([]types.CharacterBrief, 0, len(cast))
	for _, c := range cast {
		if c == nil {
			continue
		}
		out = append(out, types.CharacterBrief{
			ID:        c.ID,
			Name:      c.DisplayName(),
			Title:     c.Title,
			Archetype: c.Archetype,
			WorkMode:  InferWorkMode(c),
			IsPerfect: c.IsPerfect,
		})
	}
	return out
}
