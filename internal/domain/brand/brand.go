package brand

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Brand is the tenant entity all characters, events and content hang off.
type Brand struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name    string    `gorm:"column:name;not null" json:"name"`
	Tagline string    `gorm:"column:tagline" json:"tagline"`
	Mission string    `gorm:"column:mission;type:text" json:"mission"`

	CoreMessage  string         `gorm:"column:core_message;type:text" json:"core_message"`
	Voice        string         `gorm:"column:voice;type:text" json:"voice"`
	Tone         string         `gorm:"column:tone" json:"tone"`
	Values       datatypes.JSON `gorm:"type:jsonb;column:values" json:"values"`
	Personality  datatypes.JSON `gorm:"type:jsonb;column:personality" json:"personality"`
	Archetype    string         `gorm:"column:archetype" json:"archetype"`
	BuyerProfile string         `gorm:"column:buyer_profile;type:text" json:"buyer_profile"`
	Audience     string         `gorm:"column:audience;type:text" json:"audience"`
	HQLocation   string         `gorm:"column:hq_location" json:"hq_location"`

	// Narrative arc for the brand's ongoing story.
	ArcTheme      string `gorm:"column:arc_theme;type:text" json:"arc_theme"`
	ArcConflict   string `gorm:"column:arc_conflict;type:text" json:"arc_conflict"`
	ArcResolution string `gorm:"column:arc_resolution;type:text" json:"arc_resolution"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Brand) TableName() string { return "brand" }
