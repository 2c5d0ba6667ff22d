package handler

import "net/http"

// Ping обрабатывает GET /ping для проверки работоспособности
func (h *Handler) Ping(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
