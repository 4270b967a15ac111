package story

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	redisclient "github.com/andora-ai/andora-backend/internal/clients/redis"
	knowledgerepo "github.com/andora-ai/andora-backend/internal/data/repos/knowledge"
	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
)

const (
	defaultTopK       = 5
	defaultMinScore   = 0.2
	candidateLimit    = 200
	maxEmbedBatchSize = 8
)

// KnowledgeQuery narrows a similarity search. Zero values take the defaults:
// topK 5, minScore 0.2, all source types.
type KnowledgeQuery struct {
	TopK        int
	MinScore    float64
	SourceTypes []string
}

// KnowledgeDocumentInput is one document handed to ingestion. SourceID, when
// set together with SourceType, makes the document upsert-tracked.
type KnowledgeDocumentInput struct {
	SourceType string
	SourceID   string
	Title      string
	Summary    string
	Content    string
	Metadata   map[string]any
}

// QueryKnowledge embeds the query text and ranks the brand's stored documents
// by cosine similarity, returning at most topK snippets scoring at least
// minScore. An empty brand, empty query, missing table or empty embedding all
// degrade to an empty result rather than an error.
func (e *Engine) QueryKnowledge(ctx context.Context, brandID uuid.UUID, query string, opts KnowledgeQuery) ([]types.ContextSnippet, error) {
	query = strings.TrimSpace(query)
	if brandID == uuid.Nil || query == "" {
		return nil, nil
	}
	if _, ok := e.cache.Get(keyKnowledgeMiss(brandID)); ok {
		return nil, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}

	vecs, err := e.ai.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, nil
	}
	queryVec := vecs[0]

	docs, err := e.documents.ListCandidates(dbctx.Context{Ctx: ctx}, brandID, opts.SourceTypes, candidateLimit)
	if err != nil {
		if errs.IsMissingRelation(err) {
			e.log.Warn("knowledge table missing, serving empty snippets", "brand_id", brandID)
			e.cache.Set(keyKnowledgeMiss(brandID), true, ttlKnowledgeFallback)
			return nil, nil
		}
		return nil, err
	}

	snippets := make([]types.ContextSnippet, 0, len(docs))
	for _, doc := range docs {
		stored := knowledgerepo.EmbeddingOf(doc)
		if len(stored) == 0 {
			continue
		}
		score := cosineSim(queryVec, stored)
		if score < minScore {
			continue
		}
		snippets = append(snippets, snippetOf(doc, score))
	}
	sort.SliceStable(snippets, func(i, j int) bool {
		return snippets[i].Score > snippets[j].Score
	})
	if len(snippets) > topK {
		snippets = snippets[:topK]
	}
	return snippets, nil
}

// UpsertKnowledgeDocuments embeds and stores a batch of documents
// concurrently. A document whose embedding call fails is skipped with a
// warning; the rest of the batch still lands. Successful ingestion
// invalidates the brand's perfect-content and season bundles locally and, if
// a bus is wired, broadcasts the invalidation to peer processes.
func (e *Engine) UpsertKnowledgeDocuments(ctx context.Context, brandID uuid.UUID, docs []KnowledgeDocumentInput) (int, error) {
	if brandID == uuid.Nil || len(docs) == 0 {
		return 0, nil
	}

	stored := make([]bool, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxEmbedBatchSize)
	for i := range docs {
		i := i
		g.Go(func() error {
			doc := docs[i]
			content := strings.TrimSpace(doc.Content)
			if content == "" {
				return nil
			}
			vecs, err := e.ai.Embed(gctx, []string{content})
			if err != nil || len(vecs) == 0 {
				e.log.Warn("embedding failed, skipping document",
					"brand_id", brandID, "source_type", doc.SourceType, "error", err)
				return nil
			}
			row := &types.KnowledgeDocument{
				BrandID:    brandID,
				SourceType: doc.SourceType,
				Title:      doc.Title,
				Summary:    doc.Summary,
				Content:    content,
				Metadata:   encodeMetadata(doc.Metadata),
				Embedding:  knowledgerepo.EncodeEmbedding(vecs[0]),
			}
			if doc.SourceType != "" && doc.SourceID != "" {
				sid := doc.SourceID
				row.SourceID = &sid
				if err := e.documents.UpsertTracked(dbctx.Context{Ctx: gctx}, row); err != nil {
					return err
				}
			} else if err := e.documents.Insert(dbctx.Context{Ctx: gctx}, row); err != nil {
				return err
			}
			stored[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for _, ok := range stored {
		if ok {
			n++
		}
	}
	if n > 0 {
		e.invalidateKnowledgeScopes(ctx, brandID)
	}
	return n, nil
}

// invalidateKnowledgeScopes drops the cache entries whose contents depend on
// the knowledge corpus: retrieval can change what perfect-content and season
// bundles would compose.
func (e *Engine) invalidateKnowledgeScopes(ctx context.Context, brandID uuid.UUID) {
	prefix := brandPrefix(brandID)
	e.cache.InvalidatePrefix(prefix + "perfect:")
	e.cache.InvalidatePrefix(prefix + "season:")
	e.cache.InvalidatePrefix(prefix + "season-plot:")
	e.cache.InvalidatePrefix(prefix + "knowledge-miss")

	if e.bus != nil {
		err := e.bus.Publish(ctx, redisclient.InvalidationMessage{
			BrandID: brandID,
			Scope:   "knowledge",
			Source:  "engine",
		})
		if err != nil {
			e.log.Warn("invalidation publish failed", "brand_id", brandID, "error", err)
		}
	}
}

func snippetOf(doc *types.KnowledgeDocument, score float64) types.ContextSnippet {
	summary := strings.TrimSpace(doc.Summary)
	if summary == "" {
		summary = truncateText(strings.TrimSpace(doc.Content), 200)
	}
	return types.ContextSnippet{
		ID:         doc.ID,
		Summary:    summary,
		Content:    doc.Content,
		SourceType: doc.SourceType,
		SourceID:   doc.SourceID,
		Score:      score,
	}
}

func encodeMetadata(meta map[string]any) datatypes.JSON {
	if len(meta) == 0 {
		return nil
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// cosineSim is dot(a,b) / (|a|*|b|). Empty, length-mismatched or zero-norm
// vectors score 0 instead of failing.
func cosineSim(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
