package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/avc-dev/tag-registry/internal/usecase"
	"go.uber.org/zap"
)

// TagUsecase определяет сценарии использования, доступные HTTP-слою
type TagUsecase interface {
	Lookup(ctx context.Context, rawID string) (usecase.LookupResult, error)
	Register(ctx context.Context, req usecase.RegisterRequest) (model.Code, error)
	IssueBatch(ctx context.Context, params usecase.IssueBatchParams) ([]model.BatchRow, error)
}

// Handler обрабатывает HTTP запросы
type Handler struct {
	usecase TagUsecase
	logger  *zap.Logger
}

// New создает новый экземпляр Handler
func New(u TagUsecase, logger *zap.Logger) *Handler {
	return &Handler{
		usecase: u,
		logger:  logger,
	}
}

// handleError преобразует ошибку сценария в HTTP статус.
// Каждый тег из таксономии ошибок отображается в свой код;
// слой отображения подбирает пользовательский текст по статусу.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		http.Error(w, "invalid tag", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMissingContact):
		http.Error(w, "at least one contact method is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAlreadyActivated):
		http.Error(w, "tag already registered", http.StatusConflict)
	case errors.Is(err, usecase.ErrDisabled):
		http.Error(w, "tag disabled", http.StatusGone)
	default:
		h.logger.Error("internal error", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
