package brand

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type RelationshipRepo interface {
	ListByBrand(dbc dbctx.Context, brandID uuid.UUID) ([]*types.CharacterRelationship, error)
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	return &relationshipRepo{db: db, log: baseLog.With("repo", "RelationshipRepo")}
}

func (r *relationshipRepo) ListByBrand(dbc dbctx.Context, brandID uuid.UUID) ([]*types.CharacterRelationship, error) {
	var out []*types.CharacterRelationship
	if brandID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("brand_id = ?", brandID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
