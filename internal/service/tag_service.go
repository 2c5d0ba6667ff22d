package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc-dev/tag-registry/internal/config"
	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/avc-dev/tag-registry/internal/store"
)

// TagRepository определяет методы хранилища, нужные выдаче алиасов
type TagRepository interface {
	GetItem(ctx context.Context, uuid string) (model.Item, error)
	ClaimAlias(ctx context.Context, code model.Code, uuid string) (model.Code, bool, error)
}

// Generator определяет генератор кодов
type Generator interface {
	Generate(length int) (model.Code, error)
}

// TagService содержит бизнес-логику выдачи коротких алиасов
type TagService struct {
	repo      TagRepository
	generator Generator
	cfg       *config.Config
}

// NewTagService создает новый экземпляр TagService
func NewTagService(repo TagRepository, cfg *config.Config) *TagService {
	return &TagService{
		repo:      repo,
		generator: NewCodeGenerator(),
		cfg:       cfg,
	}
}

// EnsureAlias возвращает существующий короткий алиас тега или чеканит новый.
// Идемпотентна: если алиас уже есть, записи не выполняются. Иначе — до
// Retry.MaxAttempts попыток закрепить кандидата атомарным check-and-set;
// коллизия кандидата — единственная ошибка, которая повторяется внутри,
// ошибки хранилища пробрасываются сразу.
func (s *TagService) EnsureAlias(ctx context.Context, uuid string, length int) (model.Code, error) {
	item, err := s.repo.GetItem(ctx, uuid)
	if err != nil {
		return "", fmt.Errorf("failed to read item for alias: %w", err)
	}

	if item.Short != "" {
		return item.Short, nil
	}

	for attempt := 0; attempt < s.cfg.Retry.MaxAttempts; attempt++ {
		candidate, err := s.generator.Generate(length)
		if err != nil {
			return "", fmt.Errorf("failed to generate candidate: %w", err)
		}

		finalCode, _, err := s.repo.ClaimAlias(ctx, candidate, uuid)
		if err != nil {
			if errors.Is(err, store.ErrAliasExists) {
				// Кандидат занят другим тегом — пробуем следующий
				continue
			}
			return "", fmt.Errorf("failed to claim alias: %w", err)
		}

		// finalCode — либо наш кандидат, либо код, закреплённый
		// конкурентом внутри той же транзакции
		return finalCode, nil
	}

	return "", fmt.Errorf("after %d attempts: %w", s.cfg.Retry.MaxAttempts, ErrAliasGenerationExhausted)
}
