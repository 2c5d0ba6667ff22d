package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/avc-dev/tag-registry/internal/service"
	"github.com/avc-dev/tag-registry/internal/store"
	"go.uber.org/zap"
)

// LookupResult — данные, которые получает слой отображения.
// Для невостребованного тега это короткий код для формы регистрации,
// для активированного — публичный профиль владельца.
type LookupResult struct {
	Status  model.Status
	Short   model.Code
	Profile *model.PublicProfile
}

// Lookup разрешает внешний идентификатор и возвращает данные для
// отображения в зависимости от состояния тега. Для issued тега алиас
// чеканится лениво прямо здесь (read path из контракта маршрутизации).
func (u *TagUsecase) Lookup(ctx context.Context, rawID string) (LookupResult, error) {
	uuid, err := u.resolver.Resolve(ctx, rawID)
	if err != nil {
		if errors.Is(err, service.ErrNotResolved) {
			return LookupResult{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		u.logger.Error("failed to resolve identifier", zap.Error(err))
		return LookupResult{}, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	item, err := u.repo.GetItem(ctx, uuid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LookupResult{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		u.logger.Error("failed to get item",
			zap.String("uuid", uuid),
			zap.Error(err),
		)
		return LookupResult{}, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	switch item.Status {
	case model.StatusIssued:
		short, err := u.issuer.EnsureAlias(ctx, uuid, u.cfg.CodeLength)
		if err != nil {
			u.logger.Error("failed to ensure alias",
				zap.String("uuid", uuid),
				zap.Error(err),
			)
			return LookupResult{}, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}
		return LookupResult{Status: model.StatusIssued, Short: short}, nil

	case model.StatusActivated:
		profile := item.PublicProfile
		if profile == nil {
			profile = &model.PublicProfile{}
		}
		return LookupResult{Status: model.StatusActivated, Profile: profile}, nil

	default:
		return LookupResult{}, fmt.Errorf("item %s: %w", uuid, ErrDisabled)
	}
}
