package middleware

import (
	"net/http"

	"github.com/avc-dev/tag-registry/internal/service"
	"go.uber.org/zap"
)

// AuthMiddleware представляет миддлвар для аутентификации администратора
type AuthMiddleware struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthMiddleware создает новый экземпляр AuthMiddleware
func NewAuthMiddleware(authService *service.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// RequireAdmin возвращает миддлвар, который пропускает только запросы
// с валидным админским токеном или сессионной кукой
func (am *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !am.authService.Authenticate(r, w) {
			am.logger.Warn("unauthorized admin request",
				zap.String("uri", r.RequestURI),
				zap.String("remote_addr", r.RemoteAddr),
			)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
