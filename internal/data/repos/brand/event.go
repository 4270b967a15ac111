package brand

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type EventRepo interface {
	ListInRange(dbc dbctx.Context, brandID uuid.UUID, from, to time.Time) ([]*types.CalendarEvent, error)
	Upsert(dbc dbctx.Context, ev *types.CalendarEvent) error
	// Version returns the row count and the latest update time for the
	// brand's events; together they fingerprint the event set.
	Version(dbc dbctx.Context, brandID uuid.UUID) (int64, time.Time, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{db: db, log: baseLog.With("repo", "EventRepo")}
}

func (r *eventRepo) ListInRange(dbc dbctx.Context, brandID uuid.UUID, from, to time.Time) ([]*types.CalendarEvent, error) {
	var out []*types.CalendarEvent
	if brandID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("brand_id = ? AND date >= ? AND date <= ?", brandID, from, to).
		Order("date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) Upsert(dbc dbctx.Context, ev *types.CalendarEvent) error {
	if ev == nil || ev.BrandID == uuid.Nil {
		return nil
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	now := time.Now().UTC()
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = now
	}
	ev.UpdatedAt = now
	return dbc.DB(r.db).Save(ev).Error
}

func (r *eventRepo) Version(dbc dbctx.Context, brandID uuid.UUID) (int64, time.Time, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.CalendarEvent{}).
		Where("brand_id = ?", brandID).
		Count(&count).Error; err != nil {
		return 0, time.Time{}, err
	}
	var maxUpdated *time.Time
	if err := dbc.DB(r.db).
		Model(&types.CalendarEvent{}).
		Where("brand_id = ?", brandID).
		Select("MAX(updated_at)").
		Scan(&maxUpdated).Error; err != nil {
		return 0, time.Time{}, err
	}
	if maxUpdated == nil {
		return count, time.Time{}, nil
	}
	return count, *maxUpdated, nil
}
