package story_test

import (
	"context"
	"testing"
	"time"

	"github.com/andora-ai/andora-backend/internal/data/repos/testutil"
	"github.com/andora-ai/andora-backend/internal/pkg/errs"
	"github.com/andora-ai/andora-backend/internal/platform/dbctx"

	storyrepo "github.com/andora-ai/andora-backend/internal/data/repos/story"
)

func TestThemeRepoGetByMonth(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()

	b := testutil.SeedBrand(t, ctx, tx, "Acme")
	testutil.SeedTheme(t, ctx, tx, b.ID, 3, 2026, "Building in public")

	repo := storyrepo.NewThemeRepo(gdb, log)
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	theme, err := repo.GetByMonth(dbc, b.ID, 3, 2026)
	if err != nil {
		t.Fatalf("GetByMonth: %v", err)
	}
	if theme.Title != "Building in public" {
		t.Fatalf("title = %q", theme.Title)
	}

	_, err = repo.GetByMonth(dbc, b.ID, 4, 2026)
	if !errs.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound for an unplanned month", err)
	}
}

func TestSubplotRepoListByBrandMonthParsesHooks(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()

	b := testutil.SeedBrand(t, ctx, tx, "Acme")
	theme := testutil.SeedTheme(t, ctx, tx, b.ID, 3, 2026, "Building in public")
	testutil.SeedSubplot(t, ctx, tx, theme.ID, b.ID, 1,
		`[{"sequence":1,"day_of_week":3,"hook":"midweek reveal","payoff":"demo day"}]`)
	// Valid JSON of the wrong shape: parses as a document, not a hook list.
	testutil.SeedSubplot(t, ctx, tx, theme.ID, b.ID, 2, `{"not":"a hook list"}`)

	repo := storyrepo.NewSubplotRepo(gdb, log)
	rows, err := repo.ListByBrandMonth(dbctx.Context{Ctx: ctx, Tx: tx}, b.ID, 3, 2026)
	if err != nil {
		t.Fatalf("ListByBrandMonth: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}

	first := storyrepo.SubplotContextOf(rows[0])
	if len(first.Hooks) != 1 || first.Hooks[0].Hook != "midweek reveal" {
		t.Fatalf("hooks = %v", first.Hooks)
	}
	if first.Hooks[0].DayOfWeek == nil || *first.Hooks[0].DayOfWeek != 3 {
		t.Fatal("day_of_week lost in parsing")
	}

	// Malformed hooks column degrades to an empty list, never an error.
	second := storyrepo.SubplotContextOf(rows[1])
	if len(second.Hooks) != 0 {
		t.Fatalf("hooks = %v, want empty for malformed column", second.Hooks)
	}

	byTheme, err := repo.ListByTheme(dbctx.Context{Ctx: ctx, Tx: tx}, theme.ID)
	if err != nil {
		t.Fatalf("ListByTheme: %v", err)
	}
	if len(byTheme) != 2 || byTheme[0].WeekNumber != 1 {
		t.Fatalf("byTheme = %d rows, want both weeks ordered ascending", len(byTheme))
	}
}

func TestContentRepoListRecentPerfect(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()

	b := testutil.SeedBrand(t, ctx, tx, "Acme")
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	older := testutil.SeedPerfectContent(t, ctx, tx, b.ID, day.AddDate(0, 0, -14), "instagram", "reel")
	newer := testutil.SeedPerfectContent(t, ctx, tx, b.ID, day.AddDate(0, 0, -1), "instagram", "reel")
	testutil.SeedPerfectContent(t, ctx, tx, b.ID, day.AddDate(0, 0, -2), "email", "newsletter")

	repo := storyrepo.NewContentRepo(gdb, log)
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	items, err := repo.ListRecentPerfect(dbc, b.ID, "instagram", "reel", 5)
	if err != nil {
		t.Fatalf("ListRecentPerfect: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].ID != newer.ID {
		t.Fatal("items not ordered newest first")
	}

	// Dropping the quality marker removes the item from the projection.
	if err := repo.MarkQuality(dbc, older.ID, "draft"); err != nil {
		t.Fatalf("MarkQuality: %v", err)
	}
	items, err = repo.ListRecentPerfect(dbc, b.ID, "instagram", "reel", 5)
	if err != nil {
		t.Fatalf("ListRecentPerfect: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d after demotion, want 1", len(items))
	}

	all, err := repo.ListRecentPerfect(dbc, b.ID, "", "", 5)
	if err != nil {
		t.Fatalf("ListRecentPerfect: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered items = %d, want 2", len(all))
	}
}
