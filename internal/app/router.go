package app

import (
	"github.com/avc-dev/tag-registry/internal/config"
	"github.com/avc-dev/tag-registry/internal/handler"
	"github.com/avc-dev/tag-registry/internal/middleware"
	"github.com/avc-dev/tag-registry/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newRouter создает и настраивает роутер приложения
func newRouter(h *handler.Handler, logger *zap.Logger, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.GzipMiddleware(logger))
	r.Use(middleware.NoIndex)

	// Admin auth
	authService := service.NewAuthService(cfg.AdminToken)
	authMiddleware := middleware.NewAuthMiddleware(authService, logger)

	// Public routes
	r.Get("/ping", h.Ping)
	r.Get("/q/{id}", h.GetTag)
	r.Post("/api/register", h.Register)

	// Admin routes — только с валидным токеном или сессией
	r.With(authMiddleware.RequireAdmin).Post("/admin/issue-batch", h.IssueBatch)

	return r
}
