package story

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type ThemeRepo interface {
	GetByMonth(dbc dbctx.Context, brandID uuid.UUID, month, year int) (*types.MonthlyTheme, error)
	Upsert(dbc dbctx.Context, theme *types.MonthlyTheme) error
}

type themeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewThemeRepo(db *gorm.DB, baseLog *logger.Logger) ThemeRepo {
	return &themeRepo{db: db, log: baseLog.With("repo", "ThemeRepo")}
}

func (r *themeRepo) GetByMonth(dbc dbctx.Context, brandID uuid.UUID, month, year int) (*types.MonthlyTheme, error) {
	if brandID == uuid.Nil {
		return nil, fmt.Errorf("brand id required: %w", errs.ErrInvalidArgument)
	}
	var out types.MonthlyTheme
	err := dbc.DB(r.db).
		Where("brand_id = ? AND month = ? AND year = ?", brandID, month, year).
		First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("theme for brand %s %d/%d: %w", brandID, month, year, errs.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (r *themeRepo) Upsert(dbc dbctx.Context, theme *types.MonthlyTheme) error {
	if theme == nil || theme.BrandID == uuid.Nil {
		return nil
	}
	if theme.ID == uuid.Nil {
		theme.ID = uuid.New()
	}
	now := time.Now().UTC()
	if theme.CreatedAt.IsZero() {
		theme.CreatedAt = now
	}
	theme.UpdatedAt = now
	return dbc.DB(r.db).Save(theme).Error
}
