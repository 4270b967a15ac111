package knowledge

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type DocumentRepo interface {
	// ListCandidates loads the most-recently-updated documents for a brand,
	// optionally narrowed by source type, capped at limit.
	ListCandidates(dbc dbctx.Context, brandID uuid.UUID, sourceTypes []string, limit int) ([]*types.KnowledgeDocument, error)
	// UpsertTracked replaces the row keyed (brand, source_type, source_id).
	UpsertTracked(dbc dbctx.Context, doc *types.KnowledgeDocument) error
	// Insert stores an untracked document as a new row.
	Insert(dbc dbctx.Context, doc *types.KnowledgeDocument) error
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "KnowledgeDocumentRepo")}
}

func (r *documentRepo) ListCandidates(dbc dbctx.Context, brandID uuid.UUID, sourceTypes []string, limit int) ([]*types.KnowledgeDocument, error) {
	var out []*types.KnowledgeDocument
	if brandID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	q := dbc.DB(r.db).Where("brand_id = ?", brandID)
	if len(sourceTypes) > 0 {
		q = q.Where("source_type IN ?", sourceTypes)
	}
	if err := q.Order("updated_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *documentRepo) UpsertTracked(dbc dbctx.Context, doc *types.KnowledgeDocument) error {
	if doc == nil || doc.BrandID == uuid.Nil || doc.SourceType == "" || doc.SourceID == nil || *doc.SourceID == "" {
		return nil
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "brand_id"}, {Name: "source_type"}, {Name: "source_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"title":      doc.Title,
				"summary":    doc.Summary,
				"content":    doc.Content,
				"metadata":   doc.Metadata,
				"embedding":  doc.Embedding,
				"updated_at": now,
				"deleted_at": nil,
			}),
		}).
		Create(doc).Error
}

func (r *documentRepo) Insert(dbc dbctx.Context, doc *types.KnowledgeDocument) error {
	if doc == nil || doc.BrandID == uuid.Nil {
		return nil
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	return dbc.DB(r.db).Create(doc).Error
}

// EmbeddingOf decodes a document's stored embedding. A malformed column
// yields nil so a single bad row never fails a whole query.
func EmbeddingOf(doc *types.KnowledgeDocument) []float32 {
	if doc == nil || len(doc.Embedding) == 0 {
		return nil
	}
	var vec []float32
	if err := json.Unmarshal([]byte(doc.Embedding), &vec); err != nil {
		return nil
	}
	return vec
}

// EncodeEmbedding renders a vector for storage in the JSON column.
func EncodeEmbedding(vec []float32) datatypes.JSON {
	if len(vec) == 0 {
		return nil
	}
	raw, err := json.Marshal(vec)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
