package brand

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type CharacterRepo interface {
	ListByBrand(dbc dbctx.Context, brandID uuid.UUID, includeMuted bool) ([]*types.Character, error)
	SetMuted(dbc dbctx.Context, id uuid.UUID, muted bool) error
	// DeleteNonPerfectByBrand purges the generated roster before a bulk
	// regeneration. Perfect characters are never auto-deleted.
	DeleteNonPerfectByBrand(dbc dbctx.Context, brandID uuid.UUID) (int64, error)
}

type characterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCharacterRepo(db *gorm.DB, baseLog *logger.Logger) CharacterRepo {
	return &characterRepo{db: db, log: baseLog.With("repo", "CharacterRepo")}
}

func (r *characterRepo) ListByBrand(dbc dbctx.Context, brandID uuid.UUID, includeMuted bool) ([]*types.Character, error) {
	var out []*types.Character
	if brandID == uuid.Nil {
		return out, nil
	}
	q := dbc.DB(r.db).Where("brand_id = ?", brandID)
	if !includeMuted {
		q = q.Where("is_muted = ?", false)
	}
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *characterRepo) SetMuted(dbc dbctx.Context, id uuid.UUID, muted bool) error {
	if id == uuid.Nil {
		return fmt.Errorf("character id required: %w", errs.ErrInvalidArgument)
	}
	res := dbc.DB(r.db).Model(&types.Character{}).Where("id = ?", id).Update("is_muted", muted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("character %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *characterRepo) DeleteNonPerfectByBrand(dbc dbctx.Context, brandID uuid.UUID) (int64, error) {
	if brandID == uuid.Nil {
		return 0, fmt.Errorf("brand id required: %w", errs.ErrInvalidArgument)
	}
	res := dbc.DB(r.db).
		Where("brand_id = ? AND is_perfect = ?", brandID, false).
		Delete(&types.Character{})
	if res.Error != nil {
		return 0, res.Error
	}
	r.log.Debug("purged non-perfect characters", "brand_id", brandID, "count", res.RowsAffected)
	return res.RowsAffected, nil
}
