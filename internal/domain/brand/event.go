package brand

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventTypeLaunch   = "launch"
	EventTypeCampaign = "campaign"
	EventTypeHoliday  = "holiday"
	EventTypeTrend    = "trend"
	EventTypeCustom   = "custom"
)

const (
	RelevanceHigh   = "high"
	RelevanceMedium = "medium"
	RelevanceLow    = "low"
)

// CalendarEvent is a brand-scoped calendar entry. Relevance breaks ties when
// several events share a date.
type CalendarEvent struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BrandID uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id"`
	Brand   *Brand    `gorm:"constraint:OnDelete:CASCADE;foreignKey:BrandID;references:ID" json:"brand,omitempty"`

	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Date        time.Time `gorm:"column:date;not null;index" json:"date"`
	EventType   string    `gorm:"column:event_type;not null;default:'custom'" json:"event_type"`
	Relevance   string    `gorm:"column:relevance;not null;default:'medium'" json:"relevance"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CalendarEvent) TableName() string { return "calendar_event" }

// RelevanceRank maps the relevance tier to a sortable weight, high first.
func (e *CalendarEvent) RelevanceRank() int {
	switch e.Relevance {
	case RelevanceHigh:
		return 0
	case RelevanceMedium:
		return 1
	default:
		return 2
	}
}
