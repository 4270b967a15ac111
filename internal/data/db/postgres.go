package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/andora-ai/andora-backend/internal/domain"
	"github.com/andora-ai/andora-backend/internal/platform/env"
	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := env.Get("POSTGRES_HOST", "localhost", log)
	port := env.Get("POSTGRES_PORT", "5432", log)
	user := env.Get("POSTGRES_USER", "postgres", log)
	password := env.Get("POSTGRES_PASSWORD", "", log)
	name := env.Get("POSTGRES_NAME", "andora", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("auto migrating postgres tables...")
	return AutoMigrate(s.db)
}

// AutoMigrate creates/updates every table the engine reads or writes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Brand{},
		&types.Character{},
		&types.CharacterRelationship{},
		&types.CalendarEvent{},

		&types.MonthlyTheme{},
		&types.WeeklySubplot{},
		&types.ContentItem{},

		&types.KnowledgeDocument{},
	)
}
