package usecase

import (
	"context"
	"time"

	"github.com/avc-dev/tag-registry/internal/config"
	"github.com/avc-dev/tag-registry/internal/model"
	"go.uber.org/zap"
)

// TagRepository определяет интерфейс хранилища для сценариев использования
type TagRepository interface {
	GetItem(ctx context.Context, uuid string) (model.Item, error)
	Activate(ctx context.Context, uuid string, profile model.PublicProfile, now time.Time) error
	CreateIssued(ctx context.Context, item model.Item) error
}

// Resolver определяет разрешение внешнего идентификатора в канонический
type Resolver interface {
	Resolve(ctx context.Context, raw string) (string, error)
}

// AliasIssuer определяет выдачу короткого алиаса тегу
type AliasIssuer interface {
	EnsureAlias(ctx context.Context, uuid string, length int) (model.Code, error)
}

// Generator определяет генератор кодов для массового выпуска
type Generator interface {
	Generate(length int) (model.Code, error)
}

// TagUsecase содержит сценарии использования: просмотр тега, регистрация
// владельца, массовый выпуск
type TagUsecase struct {
	repo      TagRepository
	resolver  Resolver
	issuer    AliasIssuer
	generator Generator
	cfg       *config.Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewTagUsecase создает новый экземпляр TagUsecase
func NewTagUsecase(repo TagRepository, resolver Resolver, issuer AliasIssuer, generator Generator, cfg *config.Config, logger *zap.Logger) *TagUsecase {
	return &TagUsecase{
		repo:      repo,
		resolver:  resolver,
		issuer:    issuer,
		generator: generator,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}
