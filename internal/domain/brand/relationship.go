package brand

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RelationshipAlly         = "ally"
	RelationshipCollaborator = "collaborator"
	RelationshipMentor       = "mentor"
	RelationshipSupport      = "support"
	RelationshipConflict     = "conflict"
	RelationshipRival        = "rival"
)

// CharacterRelationship is a directed edge between two characters of the same
// brand. No uniqueness is enforced beyond the natural (character, related) key.
type CharacterRelationship struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BrandID uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id"`

	CharacterID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"character_id"`
	Character          *Character `gorm:"constraint:OnDelete:CASCADE;foreignKey:CharacterID;references:ID" json:"character,omitempty"`
	RelatedCharacterID uuid.UUID  `gorm:"type:uuid;not null;index" json:"related_character_id"`
	RelatedCharacter   *Character `gorm:"constraint:OnDelete:CASCADE;foreignKey:RelatedCharacterID;references:ID" json:"related_character,omitempty"`

	RelationshipType string `gorm:"column:relationship_type;not null" json:"relationship_type"`
	Summary          string `gorm:"column:summary;type:text" json:"summary"`

	TensionLevel          *int `gorm:"column:tension_level" json:"tension_level,omitempty"`
	CollaborationStrength *int `gorm:"column:collaboration_strength" json:"collaboration_strength,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CharacterRelationship) TableName() string { return "character_relationship" }

// Affinity is the net score used to rank edges: collaboration minus tension.
// Missing values count as zero.
func (r *CharacterRelationship) Affinity() int {
	var collab, tension int
	if r.CollaborationStrength != nil {
		collab = *r.CollaborationStrength
	}
	if r.TensionLevel != nil {
		tension = *r.TensionLevel
	}
	return collab - tension
}

// IsAdversarial reports whether the edge type is conflict or rival.
func (r *CharacterRelationship) IsAdversarial() bool {
	return r.RelationshipType == RelationshipConflict || r.RelationshipType == RelationshipRival
}
