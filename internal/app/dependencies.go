package app

import (
	"context"
	"fmt"

	"github.com/avc-dev/tag-registry/internal/config"
	"github.com/avc-dev/tag-registry/internal/config/db"
	"github.com/avc-dev/tag-registry/internal/handler"
	"github.com/avc-dev/tag-registry/internal/migrations"
	"github.com/avc-dev/tag-registry/internal/repository"
	"github.com/avc-dev/tag-registry/internal/service"
	"github.com/avc-dev/tag-registry/internal/store"
	"github.com/avc-dev/tag-registry/internal/usecase"
	"go.uber.org/zap"
)

// initDependencies инициализирует все зависимости приложения
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*handler.Handler, []func(), error) {
	storage, closers, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	repo := repository.New(storage)
	resolver := service.NewResolver(repo)
	tagService := service.NewTagService(repo, cfg)
	generator := service.NewCodeGenerator()
	tagUsecase := usecase.NewTagUsecase(repo, resolver, tagService, generator, cfg, logger)
	h := handler.New(tagUsecase, logger)

	return h, closers, nil
}

// initStorage создает хранилище на основе конфигурации:
// PostgreSQL при наличии DSN, иначе файловое, иначе in-memory
func initStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, []func(), error) {
	if cfg.DatabaseDSN != "" {
		dbConfig := db.NewConfig(cfg.DatabaseDSN)
		database, err := dbConfig.Connect(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		migrator := migrations.NewMigrator(database.DB(), logger)
		if err := migrator.RunUp(); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		logger.Info("Using PostgreSQL storage")
		return store.NewDatabaseStore(database), []func(){database.Close}, nil
	}

	if cfg.FileStoragePath != "" {
		fileStore, err := store.NewFileStore(cfg.FileStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file store: %w", err)
		}
		logger.Info("Using file storage", zap.String("path", cfg.FileStoragePath))
		return fileStore, nil, nil
	}

	logger.Info("Using in-memory storage")
	return store.NewStore(), nil, nil
}
