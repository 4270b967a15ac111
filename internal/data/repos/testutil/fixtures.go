package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
)

func SeedBrand(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Brand {
	tb.Helper()
	b := &types.Brand{
		ID:          uuid.New(),
		Name:        name,
		Tagline:     "stories that sell",
		Voice:       "warm and direct",
		Personality: datatypes.JSON([]byte(`["bold","curious"]`)),
		Values:      datatypes.JSON([]byte(`["craft"]`)),
		Archetype:   "creator",
		HQLocation:  "Lisbon",
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed brand: %v", err)
	}
	return b
}

func SeedCharacter(tb testing.TB, ctx context.Context, tx *gorm.DB, brandID uuid.UUID, name string, perfect bool) *types.Character {
	tb.Helper()
	c := &types.Character{
		ID:        uuid.New(),
		BrandID:   brandID,
		Name:      name,
		Title:     "founder",
		Persona:   "keeps the team honest",
		IsPerfect: perfect,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed character: %v", err)
	}
	return c
}

func SeedRelationship(tb testing.TB, ctx context.Context, tx *gorm.DB, brandID, from, to uuid.UUID, relType string, collab, tension int) *types.CharacterRelationship {
	tb.Helper()
	r := &types.CharacterRelationship{
		ID:                    uuid.New(),
		BrandID:               brandID,
		CharacterID:           from,
		RelatedCharacterID:    to,
		RelationshipType:      relType,
		CollaborationStrength: &collab,
		TensionLevel:          &tension,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed relationship: %v", err)
	}
	return r
}

func SeedEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, brandID uuid.UUID, title string, date time.Time, relevance string) *types.CalendarEvent {
	tb.Helper()
	e := &types.CalendarEvent{
		ID:        uuid.New(),
		BrandID:   brandID,
		Title:     title,
		Date:      date,
		EventType: "campaign",
		Relevance: relevance,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed event: %v", err)
	}
	return e
}

func SeedTheme(tb testing.TB, ctx context.Context, tx *gorm.DB, brandID uuid.UUID, month, year int, title string) *types.MonthlyTheme {
	tb.Helper()
	th := &types.MonthlyTheme{
		ID:      uuid.New(),
		BrandID: brandID,
		Month:   month,
		Year:    year,
		Title:   title,
	}
	if err := tx.WithContext(ctx).Create(th).Error; err != nil {
		tb.Fatalf("seed theme: %v", err)
	}
	return th
}

func SeedSubplot(tb testing.TB, ctx context.Context, tx *gorm.DB, themeID, brandID uuid.UUID, week int, hooksJSON string) *types.WeeklySubplot {
	tb.Helper()
	sp := &types.WeeklySubplot{
		ID:         uuid.New(),
		ThemeID:    themeID,
		BrandID:    brandID,
		WeekNumber: week,
		Title:      "week arc",
		Hooks:      datatypes.JSON([]byte(hooksJSON)),
	}
	if err := tx.WithContext(ctx).Create(sp).Error; err != nil {
		tb.Fatalf("seed subplot: %v", err)
	}
	return sp
}

func SeedPerfectContent(tb testing.TB, ctx context.Context, tx *gorm.DB, brandID uuid.UUID, date time.Time, channel, format string) *types.ContentItem {
	tb.Helper()
	ci := &types.ContentItem{
		ID:           uuid.New(),
		BrandID:      brandID,
		Date:         date,
		Channel:      channel,
		Format:       format,
		Hook:         "behind the scenes",
		Emotion:      "pride",
		CallToAction: "follow along",
		Quality:      types.QualityPerfect,
		Status:       "published",
	}
	if err := tx.WithContext(ctx).Create(ci).Error; err != nil {
		tb.Fatalf("seed content item: %v", err)
	}
	return ci
}
