package story

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/andora-ai/andora-backend/internal/domain"
	brandtypes "github.com/andora-ai/andora-backend/internal/domain/brand"
)

// ScenePair is the outcome of narrator selection: the primary narrator, an
// optional secondary character, and a descriptor of how they relate.
type ScenePair struct {
	Primary      *types.Character
	Secondary    *types.Character
	Relationship *types.RelationshipContext
}

// SelectScenePair deterministically chooses a primary narrator and secondary
// character for a date. Perfect characters form the candidate pool when any
// exist; selection round-robins over the pool by epoch day so consecutive
// days rotate through every member before repeating.
func SelectScenePair(cast []*types.Character, edges []*types.CharacterRelationship, date time.Time) ScenePair {
	pool := perfectPool(cast)
	if len(pool) == 0 {
		return ScenePair{}
	}

	primary := pickByDate(pool, date)

	ranked := rankEdges(edges, primary.ID)
	edge := preferredEdge(ranked)

	var secondary *types.Character
	if edge != nil {
		secondary = lookupCharacter(cast, otherEndpoint(edge, primary.ID))
	}
	if secondary == nil {
		secondary = pickByDate(withoutCharacter(cast, primary.ID), date)
		edge = nil
	}

	return ScenePair{
		Primary:      primary,
		Secondary:    secondary,
		Relationship: relationshipContextOf(edge, primary, secondary),
	}
}

func perfectPool(cast []*types.Character) []*types.Character {
	pool := make([]*types.Character, 0, len(cast))
	for _, c := range cast {
		if c != nil && c.IsPerfect {
			pool = append(pool, c)
		}
	}
	if len(pool) > 0 {
		return pool
	}
	out := make([]*types.Character, 0, len(cast))
	for _, c := range cast {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// pickByDate indexes the pool by the date's epoch-day count, modulo pool
// size. A zero date selects the first member.
func pickByDate(pool []*types.Character, date time.Time) *types.Character {
	if len(pool) == 0 {
		return nil
	}
	if date.IsZero() {
		return pool[0]
	}
	days := date.Unix() / 86400
	idx := int(days % int64(len(pool)))
	if idx < 0 {
		idx += len(pool)
	}
	return pool[idx]
}

// rankEdges keeps the edges touching characterID, highest affinity first.
func rankEdges(edges []*types.CharacterRelationship, characterID uuid.UUID) []*types.CharacterRelationship {
	touching := make([]*types.CharacterRelationship, 0, len(edges))
	for _, e := range edges {
		if e == nil {
			continue
		}
		if e.CharacterID == characterID || e.RelatedCharacterID == characterID {
			touching = append(touching, e)
		}
	}
	sort.SliceStable(touching, func(i, j int) bool {
		return touching[i].Affinity() > touching[j].Affinity()
	})
	return touching
}

// preferredEdge takes the best-ranked edge but swaps an adversarial winner
// for the first non-adversarial edge anywhere in the ranking, when one
// exists. Conflict only wins when it is all the primary has.
func preferredEdge(ranked []*types.CharacterRelationship) *types.CharacterRelationship {
	if len(ranked) == 0 {
		return nil
	}
	for _, e := range ranked {
		if !e.IsAdversarial() {
			return e
		}
	}
	return ranked[0]
}

func otherEndpoint(edge *types.CharacterRelationship, characterID uuid.UUID) uuid.UUID {
	if edge.CharacterID == characterID {
		return edge.RelatedCharacterID
	}
	return edge.CharacterID
}

func lookupCharacter(cast []*types.Character, id uuid.UUID) *types.Character {
	for _, c := range cast {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}

func withoutCharacter(cast []*types.Character, id uuid.UUID) []*types.Character {
	out := make([]*types.Character, 0, len(cast))
	for _, c := range cast {
		if c != nil && c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func relationshipContextOf(edge *types.CharacterRelationship, primary, secondary *types.Character) *types.RelationshipContext {
	if secondary == nil {
		return nil
	}
	rc := &types.RelationshipContext{RelationshipType: brandtypes.RelationshipAlly}
	if edge != nil {
		if t := strings.TrimSpace(edge.RelationshipType); t != "" {
			rc.RelationshipType = t
		}
		rc.Summary = strings.TrimSpace(edge.Summary)
	}
	if rc.Summary == "" && primary != nil {
		rc.Summary = strings.TrimSpace(primary.RelationshipSummary)
	}
	if rc.Summary == "" {
		rc.Summary = strings.TrimSpace(secondary.RelationshipSummary)
	}
	return rc
}
