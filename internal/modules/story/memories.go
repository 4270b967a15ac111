package story

import (
	"context"
	"strings"

	"github.com/google/uuid"

	storyrepo "github.com/andora-ai/andora-backend/internal/data/repos/story"
	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"
)

const maxPerfectMemories = 5

// GetRecentPerfectContent returns up to five memories of user-approved
// content, newest first, optionally narrowed by channel/format. Cached 30m;
// a missing content table degrades to an empty list cached 15m.
func (e *Engine) GetRecentPerfectContent(ctx context.Context, brandID uuid.UUID, channel, format string) ([]types.PerfectContentMemory, error) {
	key := keyPerfectContent(brandID, channel, format)
	if v, ok := e.cache.Get(key); ok {
		if memories, ok := v.([]types.PerfectContentMemory); ok {
			return memories, nil
		}
	}

	items, err := e.content.ListRecentPerfect(dbctx.Context{Ctx: ctx}, brandID, channel, format, maxPerfectMemories)
	if err != nil {
		if errs.IsMissingRelation(err) {
			e.log.Warn("content table missing, serving empty memories", "brand_id", brandID)
			empty := []types.PerfectContentMemory{}
			e.cache.Set(key, empty, ttlPerfectFallback)
			return empty, nil
		}
		return nil, err
	}

	memories := make([]types.PerfectContentMemory, 0, len(items))
	for _, item := range items {
		memories = append(memories, memoryOf(item))
	}
	e.cache.Set(key, memories, ttlPerfectContent)
	return memories, nil
}

// memoryOf compacts a content item into its memory projection. The summary
// prefers hook/emotion/CTA; a bare body is truncated instead.
func memoryOf(item *types.ContentItem) types.PerfectContentMemory {
	summary := summarizeContent(item)
	return types.PerfectContentMemory{
		Date:         item.Date,
		Channel:      item.Channel,
		Format:       item.Format,
		Summary:      summary,
		Emotion:      item.Emotion,
		CallToAction: item.CallToAction,
		CharacterIDs: storyrepo.CharacterIDsOf(item),
	}
}

func summarizeContent(item *types.ContentItem) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{item.Hook, item.Emotion, item.CallToAction} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " | ")
	}
	return truncateText(strings.TrimSpace(item.Body), 200)
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
