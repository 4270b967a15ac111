package brand

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Work modes a character can be declared with. When empty, the mode is
// inferred from the free-text location.
const (
	WorkModeOnsite   = "onsite"
	WorkModeRemote   = "remote"
	WorkModeHybrid   = "hybrid"
	WorkModeFlexible = "flexible"
)

type Character struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BrandID uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id"`
	Brand   *Brand    `gorm:"constraint:OnDelete:CASCADE;foreignKey:BrandID;references:ID" json:"brand,omitempty"`

	Name      string `gorm:"column:name;not null" json:"name"`
	Title     string `gorm:"column:title" json:"title"`
	Persona   string `gorm:"column:persona;type:text" json:"persona"`
	Voice     string `gorm:"column:voice;type:text" json:"voice"`
	Location  string `gorm:"column:location" json:"location"`
	WorkMode  string `gorm:"column:work_mode" json:"work_mode"`
	StageName string `gorm:"column:stage_name" json:"stage_name"`
	Archetype string `gorm:"column:archetype" json:"archetype"`

	RelationshipSummary string `gorm:"column:relationship_summary;type:text" json:"relationship_summary"`

	// IsPerfect marks a hand-approved character; perfect characters lead
	// narrator selection and survive bulk regeneration.
	IsPerfect bool `gorm:"column:is_perfect;not null;default:false;index" json:"is_perfect"`
	// IsMuted excludes the character from story generation without deleting it.
	IsMuted bool `gorm:"column:is_muted;not null;default:false" json:"is_muted"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Character) TableName() string { return "character" }

// DisplayName prefers the public stage name over the real name.
func (c *Character) DisplayName() string {
	if c.StageName != "" {
		return c.StageName
	}
	return c.Name
}
