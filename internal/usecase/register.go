package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/avc-dev/tag-registry/internal/service"
	"github.com/avc-dev/tag-registry/internal/store"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterRequest — данные формы регистрации владельца.
// Валидность — хотя бы один контактный канал; длины core не ограничивает.
type RegisterRequest struct {
	ID      string
	Contact string `validate:"required_without=SNS"`
	SNS     string `validate:"required_without=Contact"`
	Message string
}

// Register атомарно переводит тег из issued в activated, заполняя публичный
// профиль. Возвращает короткий код для редиректа на страницу тега.
// Повторная регистрация отклоняется: переход разрешён ровно один раз.
func (u *TagUsecase) Register(ctx context.Context, req RegisterRequest) (model.Code, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Contact = strings.TrimSpace(req.Contact)
	req.SNS = strings.TrimSpace(req.SNS)
	req.Message = strings.TrimSpace(req.Message)

	// Проверяем до любых записей: без контактного канала запись не начинается
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return "", fmt.Errorf("%w: %s", ErrMissingContact, ve.Error())
		}
		return "", fmt.Errorf("%w: %w", ErrMissingContact, err)
	}

	uuid, err := u.resolver.Resolve(ctx, req.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotResolved) {
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		u.logger.Error("failed to resolve identifier", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	profile := buildProfile(req)

	if err := u.repo.Activate(ctx, uuid, profile, u.now()); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		case errors.Is(err, store.ErrAlreadyActivated):
			return "", fmt.Errorf("%w: %w", ErrAlreadyActivated, err)
		case errors.Is(err, store.ErrDisabled):
			return "", fmt.Errorf("%w: %w", ErrDisabled, err)
		default:
			u.logger.Error("failed to activate item",
				zap.String("uuid", uuid),
				zap.Error(err),
			)
			return "", fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}
	}

	u.logger.Info("tag activated", zap.String("uuid", uuid))

	// Редирект ведём на короткий код: пришедший в форме, если он им был,
	// иначе гарантируем алиас
	up := strings.ToUpper(req.ID)
	if service.IsShortCode(up) {
		return model.Code(up), nil
	}

	short, err := u.issuer.EnsureAlias(ctx, uuid, u.cfg.CodeLength)
	if err != nil {
		u.logger.Error("failed to ensure alias after activation",
			zap.String("uuid", uuid),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	return short, nil
}

// buildProfile строит публичный профиль из провалидированной формы
func buildProfile(req RegisterRequest) model.PublicProfile {
	profile := model.PublicProfile{Message: req.Message}

	if req.Contact != "" {
		phone := service.NormalizePhone(req.Contact)
		profile.Phone = &phone
	}
	if req.SNS != "" {
		sns := req.SNS
		profile.SNS = &sns
	}

	return profile
}
