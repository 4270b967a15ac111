package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/andora-ai/andora-backend/internal/clients/openai"
	redisclient "github.com/andora-ai/andora-backend/internal/clients/redis"
	"github.com/andora-ai/andora-backend/internal/data/db"
	brandrepo "github.com/andora-ai/andora-backend/internal/data/repos/brand"
	knowledgerepo "github.com/andora-ai/andora-backend/internal/data/repos/knowledge"
	storyrepo "github.com/andora-ai/andora-backend/internal/data/repos/story"
	"github.com/andora-ai/andora-backend/internal/modules/story"
	"github.com/andora-ai/andora-backend/internal/observability"
	"github.com/andora-ai/andora-backend/internal/platform/env"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

func main() {
	log, err := logger.New(env.Get("APP_ENV", "development", nil))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown := observability.Init(ctx, log, observability.Config{
		ServiceName: "andora-backend",
		Environment: env.Get("APP_ENV", "development", log),
		Version:     env.Get("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("postgres init failed", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("postgres migration failed", "error", err)
	}
	gdb := pg.DB()

	ai, err := openai.New(log)
	if err != nil {
		log.Fatal("openai client init failed", "error", err)
	}

	var bus redisclient.InvalidationBus
	if os.Getenv("REDIS_ADDR") != "" {
		bus, err = redisclient.NewInvalidationBus(log)
		if err != nil {
			log.Fatal("redis init failed", "error", err)
		}
		defer bus.Close()
	} else {
		log.Warn("REDIS_ADDR not set, running without cross-process invalidation")
	}

	engine, err := story.NewEngine(story.Repos{
		Brands:        brandrepo.NewBrandRepo(gdb, log),
		Characters:    brandrepo.NewCharacterRepo(gdb, log),
		Relationships: brandrepo.NewRelationshipRepo(gdb, log),
		Events:        brandrepo.NewEventRepo(gdb, log),
		Themes:        storyrepo.NewThemeRepo(gdb, log),
		Subplots:      storyrepo.NewSubplotRepo(gdb, log),
		Content:       storyrepo.NewContentRepo(gdb, log),
		Documents:     knowledgerepo.NewDocumentRepo(gdb, log),
	}, ai, nil, log, story.Options{Bus: bus})
	if err != nil {
		log.Fatal("engine init failed", "error", err)
	}
	defer engine.Close()

	if bus != nil {
		err = bus.StartForwarder(ctx, func(m redisclient.InvalidationMessage) {
			engine.InvalidateBrand(m.BrandID)
		})
		if err != nil {
			log.Fatal("invalidation forwarder failed", "error", err)
		}
	}

	log.Info("context engine worker running")
	<-ctx.Done()

	stats := engine.GetCacheStats()
	log.Info("shutting down", "cache_size", stats.Size, "cache_hit_rate", stats.HitRate)
}
