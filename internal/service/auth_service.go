package service

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService предоставляет аутентификацию административных запросов.
// Первичная проверка — секретный токен в заголовке; после успешной проверки
// выписывается короткоживущая JWT-сессия в куке, чтобы не передавать секрет
// с каждым запросом.
type AuthService struct {
	adminToken []byte
	jwtSecret  []byte
}

const adminCookieName = "admin_session"

// NewAuthService создает новый экземпляр AuthService.
// Секрет одновременно служит ключом подписи сессионных токенов.
func NewAuthService(adminToken string) *AuthService {
	return &AuthService{
		adminToken: []byte(adminToken),
		jwtSecret:  []byte(adminToken),
	}
}

// CheckToken проверяет админский токен в константное время
func (a *AuthService) CheckToken(incoming string) bool {
	if len(a.adminToken) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(a.adminToken, []byte(incoming)) == 1
}

// GenerateSession создает JWT сессионный токен администратора
func (a *AuthService) GenerateSession() (string, error) {
	claims := jwt.MapClaims{
		"sid": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateSession проверяет JWT сессионный токен
func (a *AuthService) ValidateSession(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})

	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return fmt.Errorf("invalid token")
	}

	return nil
}

// Authenticate проверяет запрос: сначала заголовок x-admin-token или
// параметр token, затем сессионную куку. При успешной проверке заголовка
// устанавливает сессионную куку.
func (a *AuthService) Authenticate(r *http.Request, w http.ResponseWriter) bool {
	incoming := r.Header.Get("x-admin-token")
	if incoming == "" {
		incoming = r.URL.Query().Get("token")
	}

	if incoming != "" && a.CheckToken(incoming) {
		session, err := a.GenerateSession()
		if err == nil {
			http.SetCookie(w, &http.Cookie{
				Name:     adminCookieName,
				Value:    session,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   3600,
			})
		}
		return true
	}

	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	return a.ValidateSession(cookie.Value) == nil
}
