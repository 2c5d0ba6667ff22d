package handler

import (
	"net/http"

	"github.com/avc-dev/tag-registry/internal/usecase"
	"go.uber.org/zap"
)

// Register обрабатывает POST /api/register.
// Принимает поля формы uuidOrShort (или uuid), contact, sns, message;
// при успехе отвечает 303 с редиректом на страницу тега по короткому коду.
func (h *Handler) Register(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		h.logger.Warn("failed to parse register form",
			zap.Error(err),
			zap.String("remote_addr", req.RemoteAddr),
		)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	id := req.PostFormValue("uuidOrShort")
	if id == "" {
		id = req.PostFormValue("uuid")
	}

	request := usecase.RegisterRequest{
		ID:      id,
		Contact: req.PostFormValue("contact"),
		SNS:     req.PostFormValue("sns"),
		Message: req.PostFormValue("message"),
	}

	short, err := h.usecase.Register(req.Context(), request)
	if err != nil {
		h.handleError(w, err)
		return
	}

	http.Redirect(w, req, "/q/"+short.String(), http.StatusSeeOther)
}
