package brand

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type BrandRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Brand, error)
}

type brandRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBrandRepo(db *gorm.DB, baseLog *logger.Logger) BrandRepo {
	return &brandRepo{db: db, log: baseLog.With("repo", "BrandRepo")}
}

func (r *brandRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Brand, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("brand id required: %w", errs.ErrInvalidArgument)
	}
	var out types.Brand
	if err := dbc.DB(r.db).Where("id = ?", id).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("brand %s: %w", id, errs.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}
