package story

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
)

const defaultBrandVoice = "confident, friendly and human"

// GetBrandIdentity returns the brand's identity projection, cached for 24h.
// A missing brand is a hard failure: there is no sensible empty default for
// "the brand itself doesn't exist".
func (e *Engine) GetBrandIdentity(ctx context.Context, brandID uuid.UUID) (types.BrandIdentity, error) {
	key := keyIdentity(brandID)
	if v, ok := e.cache.Get(key); ok {
		if ident, ok := v.(types.BrandIdentity); ok {
			return ident, nil
		}
	}

	b, err := e.brands.GetByID(dbctx.Context{Ctx: ctx}, brandID)
	if err != nil {
		return types.BrandIdentity{}, err
	}

	ident := identityOf(b)
	e.cache.Set(key, ident, ttlIdentity)
	return ident, nil
}

func identityOf(b *types.Brand) types.BrandIdentity {
	personality := parseStringList(b.Personality)
	return types.BrandIdentity{
		BrandID:       b.ID,
		Name:          b.Name,
		Tagline:       b.Tagline,
		Mission:       b.Mission,
		Voice:         ResolveBrandVoice(b.Voice, b.CoreMessage, personality),
		Tone:          b.Tone,
		Personality:   personality,
		Values:        parseStringList(b.Values),
		Archetype:     ResolveArchetype(b.Archetype),
		BuyerProfile:  ResolveBuyerProfile(b.BuyerProfile, b.Audience),
		Audience:      b.Audience,
		HQLocation:    b.HQLocation,
		ArcTheme:      b.ArcTheme,
		ArcConflict:   b.ArcConflict,
		ArcResolution: b.ArcResolution,
	}
}

// ResolveBrandVoice encodes the exact fallback order for a brand's voice:
// explicit voice, then core message, then the joined personality list, then
// a literal default.
func ResolveBrandVoice(voice, coreMessage string, personality []string) string {
	if v := strings.TrimSpace(voice); v != "" {
		return v
	}
	if v := strings.TrimSpace(coreMessage); v != "" {
		return v
	}
	if len(personality) > 0 {
		return strings.Join(personality, ", ")
	}
	return defaultBrandVoice
}

// ResolveArchetype falls back to the storyteller archetype when none is set.
func ResolveArchetype(archetype string) string {
	if v := strings.TrimSpace(archetype); v != "" {
		return v
	}
	return "storyteller"
}

// ResolveBuyerProfile prefers the explicit buyer profile over the broader
// audience description.
func ResolveBuyerProfile(buyerProfile, audience string) string {
	if v := strings.TrimSpace(buyerProfile); v != "" {
		return v
	}
	return strings.TrimSpace(audience)
}

func parseStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
