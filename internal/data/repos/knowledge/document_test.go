package knowledge_test

import (
	"context"
	"testing"

	"github.com/andora-ai/andora-backend/internal/data/repos/testutil"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"

	knowledgerepo "github.com/andora-ai/andora-backend/internal/data/repos/knowledge"
	types "github.com/andora-ai/andora-backend/internal/domain"
)

func TestDocumentRepoUpsertTracked(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()

	b := testutil.SeedBrand(t, ctx, tx, "Acme")
	repo := knowledgerepo.NewDocumentRepo(gdb, log)
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	sid := "faq-1"
	doc := &types.KnowledgeDocument{
		BrandID:    b.ID,
		SourceType: "faq",
		SourceID:   &sid,
		Title:      "Returns",
		Content:    "original policy",
		Embedding:  knowledgerepo.EncodeEmbedding([]float32{1, 0}),
	}
	if err := repo.UpsertTracked(dbc, doc); err != nil {
		t.Fatalf("UpsertTracked: %v", err)
	}

	updated := &types.KnowledgeDocument{
		BrandID:    b.ID,
		SourceType: "faq",
		SourceID:   &sid,
		Title:      "Returns",
		Content:    "revised policy",
		Embedding:  knowledgerepo.EncodeEmbedding([]float32{0, 1}),
	}
	if err := repo.UpsertTracked(dbc, updated); err != nil {
		t.Fatalf("UpsertTracked: %v", err)
	}

	docs, err := repo.ListCandidates(dbc, b.ID, nil, 10)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want the tracked row replaced, not duplicated", len(docs))
	}
	if docs[0].Content != "revised policy" {
		t.Fatalf("content = %q", docs[0].Content)
	}
	vec := knowledgerepo.EmbeddingOf(docs[0])
	if len(vec) != 2 || vec[1] != 1 {
		t.Fatalf("embedding = %v, want the replacement vector", vec)
	}
}

func TestDocumentRepoListCandidatesFilters(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()

	b := testutil.SeedBrand(t, ctx, tx, "Acme")
	repo := knowledgerepo.NewDocumentRepo(gdb, log)
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	for _, st := range []string{"faq", "faq", "blog"} {
		if err := repo.Insert(dbc, &types.KnowledgeDocument{
			BrandID: b.ID, SourceType: st, Content: "text",
		}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	docs, err := repo.ListCandidates(dbc, b.ID, []string{"faq"}, 10)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("docs = %d, want source-type filter applied", len(docs))
	}

	docs, err = repo.ListCandidates(dbc, b.ID, nil, 2)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("docs = %d, want limit respected", len(docs))
	}
}
