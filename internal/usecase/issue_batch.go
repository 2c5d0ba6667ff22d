package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/avc-dev/tag-registry/internal/service"
	"github.com/avc-dev/tag-registry/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxBatchCount = 1000
	minCodeLength = 10
	maxCodeLength = 20
)

// IssueBatchParams — параметры административного массового выпуска тегов
type IssueBatchParams struct {
	Count   int
	Length  int
	BatchID string
	Domain  string
}

// IssueBatch создаёт count новых тегов в статусе issued с заранее
// закреплёнными короткими алиасами и возвращает строки табличного экспорта
// (канонический идентификатор, короткий код, публичный URL).
// Каждый тег создаётся той же схемой collision-retry, что и выдача алиасов.
func (u *TagUsecase) IssueBatch(ctx context.Context, params IssueBatchParams) ([]model.BatchRow, error) {
	params = u.normalizeBatchParams(params)

	rows := make([]model.BatchRow, 0, params.Count)

	for i := 0; i < params.Count; i++ {
		id := uuid.NewString()

		short, err := u.issueOne(ctx, id, params)
		if err != nil {
			u.logger.Error("failed to issue item",
				zap.String("batch_id", params.BatchID),
				zap.Int("issued_so_far", len(rows)),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}

		rows = append(rows, model.BatchRow{
			UUID:      id,
			Short:     short,
			PublicURL: params.Domain + "/q/" + short.String(),
		})
	}

	u.logger.Info("batch issued",
		zap.String("batch_id", params.BatchID),
		zap.Int("count", len(rows)),
	)

	return rows, nil
}

// issueOne создаёт один тег: до Retry.MaxAttempts попыток занять
// сгенерированный код, коллизия кода — единственная повторяемая ошибка
func (u *TagUsecase) issueOne(ctx context.Context, id string, params IssueBatchParams) (model.Code, error) {
	for attempt := 0; attempt < u.cfg.Retry.MaxAttempts; attempt++ {
		candidate, err := u.generator.Generate(params.Length)
		if err != nil {
			return "", fmt.Errorf("failed to generate candidate: %w", err)
		}

		item := model.Item{
			UUID:      id,
			Status:    model.StatusIssued,
			Short:     candidate,
			BatchID:   params.BatchID,
			CreatedAt: u.now(),
		}

		err = u.repo.CreateIssued(ctx, item)
		if err != nil {
			if errors.Is(err, store.ErrAliasExists) {
				continue
			}
			return "", err
		}

		return candidate, nil
	}

	return "", fmt.Errorf("after %d attempts: %w", u.cfg.Retry.MaxAttempts, service.ErrAliasGenerationExhausted)
}

// normalizeBatchParams приводит параметры к допустимым диапазонам
// и подставляет значения по умолчанию
func (u *TagUsecase) normalizeBatchParams(params IssueBatchParams) IssueBatchParams {
	if params.Count < 1 {
		params.Count = 1
	}
	if params.Count > maxBatchCount {
		params.Count = maxBatchCount
	}

	if params.Length == 0 {
		params.Length = u.cfg.CodeLength
	}
	if params.Length < minCodeLength {
		params.Length = minCodeLength
	}
	if params.Length > maxCodeLength {
		params.Length = maxCodeLength
	}

	if params.BatchID == "" {
		params.BatchID = u.now().UTC().Format("20060102T150405")
	}

	if params.Domain == "" {
		params.Domain = u.cfg.BaseURL.String()
	}
	params.Domain = strings.TrimRight(params.Domain, "/")

	return params
}
