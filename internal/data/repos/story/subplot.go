package story

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type SubplotRepo interface {
	ListByTheme(dbc dbctx.Context, themeID uuid.UUID) ([]*types.WeeklySubplot, error)
	ListByBrandMonth(dbc dbctx.Context, brandID uuid.UUID, month, year int) ([]*types.WeeklySubplot, error)
}

type subplotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubplotRepo(db *gorm.DB, baseLog *logger.Logger) SubplotRepo {
	return &subplotRepo{db: db, log: baseLog.With("repo", "SubplotRepo")}
}

func (r *subplotRepo) ListByTheme(dbc dbctx.Context, themeID uuid.UUID) ([]*types.WeeklySubplot, error) {
	var out []*types.WeeklySubplot
	if themeID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("theme_id = ?", themeID).
		Order("week_number ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *subplotRepo) ListByBrandMonth(dbc dbctx.Context, brandID uuid.UUID, month, year int) ([]*types.WeeklySubplot, error) {
	var out []*types.WeeklySubplot
	if brandID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Joins("JOIN monthly_theme ON monthly_theme.id = weekly_subplot.theme_id").
		Where("weekly_subplot.brand_id = ? AND monthly_theme.month = ? AND monthly_theme.year = ?", brandID, month, year).
		Order("weekly_subplot.week_number ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SubplotContextOf parses a subplot row's JSON columns into the read-side
// projection. Malformed JSON degrades field-by-field to empty values; it
// never fails the read.
func SubplotContextOf(sp *types.WeeklySubplot) types.SubplotContext {
	if sp == nil {
		return types.SubplotContext{}
	}
	return types.SubplotContext{
		ID:           sp.ID,
		WeekNumber:   sp.WeekNumber,
		Title:        sp.Title,
		Description:  sp.Description,
		CharacterIDs: parseUUIDList(sp.CharacterIDs),
		EventIDs:     parseUUIDList(sp.EventIDs),
		Hooks:        parseHooks(sp.Hooks),
	}
}

func parseHooks(raw datatypes.JSON) []types.NextSceneHook {
	if len(raw) == 0 {
		return nil
	}
	var hooks []types.NextSceneHook
	if err := json.Unmarshal([]byte(raw), &hooks); err != nil {
		return nil
	}
	return hooks
}

func parseUUIDList(raw datatypes.JSON) []uuid.UUID {
	if len(raw) == 0 {
		return nil
	}
	var strs []string
	if err := json.Unmarshal([]byte(raw), &strs); err != nil {
		return nil
	}
	out := make([]uuid.UUID, 0, len(strs))
	for _, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil || id == uuid.Nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
