package story

import (
	"time"

	"github.com/google/uuid"
	brandtypes "github.com/andora-ai/andora-backend/internal/domain/brand"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MonthlyTheme is the one theme per (brand, month, year) produced by the
// upstream planning agent.
type MonthlyTheme struct {
	ID      uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BrandID uuid.UUID         `gorm:"type:uuid;not null;index:idx_theme_brand_month,priority:1" json:"brand_id"`
	Brand   *brandtypes.Brand `gorm:"constraint:OnDelete:CASCADE;foreignKey:BrandID;references:ID" json:"brand,omitempty"`

	Month int `gorm:"column:month;not null;index:idx_theme_brand_month,priority:2" json:"month"`
	Year  int `gorm:"column:year;not null;index:idx_theme_brand_month,priority:3" json:"year"`

	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MonthlyTheme) TableName() string { return "monthly_theme" }

// WeeklySubplot is a week-scoped narrative arc inside a monthly theme.
// Hooks, character ids and event ids are stored as JSON; the repo parses them
// with a parse-or-default contract so malformed rows never fail a read.
type WeeklySubplot struct {
	ID      uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ThemeID uuid.UUID     `gorm:"type:uuid;not null;index" json:"theme_id"`
	Theme   *MonthlyTheme `gorm:"constraint:OnDelete:CASCADE;foreignKey:ThemeID;references:ID" json:"theme,omitempty"`
	BrandID uuid.UUID     `gorm:"type:uuid;not null;index" json:"brand_id"`

	WeekNumber  int    `gorm:"column:week_number;not null" json:"week_number"`
	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`

	CharacterIDs datatypes.JSON `gorm:"type:jsonb;column:character_ids" json:"character_ids"`
	EventIDs     datatypes.JSON `gorm:"type:jsonb;column:event_ids" json:"event_ids"`
	Hooks        datatypes.JSON `gorm:"type:jsonb;column:hooks" json:"hooks"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (WeeklySubplot) TableName() string { return "weekly_subplot" }

// NextSceneHook is one entry of a subplot's ordered hook list.
type NextSceneHook struct {
	Sequence     int    `json:"sequence"`
	DayOfWeek    *int   `json:"day_of_week,omitempty"` // ISO weekday, Monday=1..Sunday=7
	Hook         string `json:"hook"`
	Payoff       string `json:"payoff"`
	Setup        string `json:"setup,omitempty"`
	NarratorHint string `json:"narrator_hint,omitempty"`
}
