package story

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type ContentRepo interface {
	// ListRecentPerfect returns the newest user-approved content items,
	// optionally narrowed to a channel and/or format.
	ListRecentPerfect(dbc dbctx.Context, brandID uuid.UUID, channel, format string, limit int) ([]*types.ContentItem, error)
	MarkQuality(dbc dbctx.Context, id uuid.UUID, quality string) error
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

func (r *contentRepo) ListRecentPerfect(dbc dbctx.Context, brandID uuid.UUID, channel, format string, limit int) ([]*types.ContentItem, error) {
	var out []*types.ContentItem
	if brandID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 {
		limit = 5
	}
	q := dbc.DB(r.db).
		Where("brand_id = ? AND quality = ?", brandID, types.QualityPerfect)
	if channel != "" {
		q = q.Where("channel = ?", channel)
	}
	if format != "" {
		q = q.Where("format = ?", format)
	}
	if err := q.Order("date DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CharacterIDsOf parses a content item's character id column, dropping
// anything malformed.
func CharacterIDsOf(ci *types.ContentItem) []uuid.UUID {
	if ci == nil {
		return nil
	}
	return parseUUIDList(ci.CharacterIDs)
}

func (r *contentRepo) MarkQuality(dbc dbctx.Context, id uuid.UUID, quality string) error {
	if id == uuid.Nil {
		return fmt.Errorf("content id required: %w", errs.ErrInvalidArgument)
	}
	res := dbc.DB(r.db).Model(&types.ContentItem{}).Where("id = ?", id).Update("quality", quality)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("content item %s: %w", id, errs.ErrNotFound)
	}
	return nil
}
