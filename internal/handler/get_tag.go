package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/go-chi/chi/v5"
)

// TagResponse — данные для слоя отображения: код для формы регистрации
// (issued) либо публичный профиль владельца (activated)
type TagResponse struct {
	Status  model.Status         `json:"status"`
	Short   string               `json:"short,omitempty"`
	Profile *model.PublicProfile `json:"profile,omitempty"`
}

// GetTag обрабатывает GET /q/{id}: id — канонический идентификатор или
// короткий код
func (h *Handler) GetTag(w http.ResponseWriter, req *http.Request) {
	rawID := chi.URLParam(req, "id")

	result, err := h.usecase.Lookup(req.Context(), rawID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response := TagResponse{
		Status:  result.Status,
		Short:   result.Short.String(),
		Profile: result.Profile,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
