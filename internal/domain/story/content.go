package story

import (
	"time"

	"github.com/google/uuid"
	brandtypes "github.com/andora-ai/andora-backend/internal/domain/brand"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// QualityPerfect marks a user-approved exemplar content item.
	QualityPerfect = "perfect"

	ContentStatusDraft     = "draft"
	ContentStatusScheduled = "scheduled"
	ContentStatusPublished = "published"
)

// ContentItem is one generated content-calendar entry (one scene: one day,
// one channel).
type ContentItem struct {
	ID      uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BrandID uuid.UUID         `gorm:"type:uuid;not null;index" json:"brand_id"`
	Brand   *brandtypes.Brand `gorm:"constraint:OnDelete:CASCADE;foreignKey:BrandID;references:ID" json:"brand,omitempty"`

	Date    time.Time `gorm:"column:date;not null;index" json:"date"`
	Channel string    `gorm:"column:channel;not null" json:"channel"`
	Format  string    `gorm:"column:format" json:"format"`

	Hook         string `gorm:"column:hook;type:text" json:"hook"`
	Body         string `gorm:"column:body;type:text" json:"body"`
	Emotion      string `gorm:"column:emotion" json:"emotion"`
	CallToAction string `gorm:"column:call_to_action" json:"call_to_action"`

	CharacterIDs datatypes.JSON `gorm:"type:jsonb;column:character_ids" json:"character_ids"`

	Quality string `gorm:"column:quality;index" json:"quality"`
	Status  string `gorm:"column:status;not null;default:'draft'" json:"status"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentItem) TableName() string { return "content_item" }
