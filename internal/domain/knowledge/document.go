package knowledge

import (
	"time"

	"github.com/google/uuid"
	brandtypes "github.com/andora-ai/andora-backend/internal/domain/brand"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// KnowledgeDocument is one ingested brand document with its embedding stored
// as a JSON float array. Rows carrying a source id are upsert-tracked on
// (brand_id, source_type, source_id); others are untracked inserts.
type KnowledgeDocument struct {
	ID      uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BrandID uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_knowledge_source,priority:1" json:"brand_id"`
	Brand   *brandtypes.Brand `gorm:"constraint:OnDelete:CASCADE;foreignKey:BrandID;references:ID" json:"brand,omitempty"`

	SourceType string  `gorm:"column:source_type;not null;index;uniqueIndex:idx_knowledge_source,priority:2" json:"source_type"`
	SourceID   *string `gorm:"column:source_id;uniqueIndex:idx_knowledge_source,priority:3" json:"source_id,omitempty"`

	Title   string `gorm:"column:title" json:"title"`
	Summary string `gorm:"column:summary;type:text" json:"summary"`
	Content string `gorm:"column:content;type:text;not null" json:"content"`

	Metadata  datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	Embedding datatypes.JSON `gorm:"type:jsonb;column:embedding" json:"embedding"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now();index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (KnowledgeDocument) TableName() string { return "knowledge_document" }
