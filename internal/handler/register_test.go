package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/avc-dev/tag-registry/internal/model"
	"github.com/avc-dev/tag-registry/internal/usecase"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newRegisterRequest собирает POST запрос с полями формы
func newRegisterRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// TestRegister_Success проверяет редирект на страницу тега после регистрации
func TestRegister_Success(t *testing.T) {
	// Arrange
	var captured usecase.RegisterRequest
	mock := &mockUsecase{
		RegisterFunc: func(_ context.Context, req usecase.RegisterRequest) (model.Code, error) {
			captured = req
			return "SOMECODE000001", nil
		},
	}
	h := New(mock, zap.NewNop())
	w := httptest.NewRecorder()

	form := url.Values{
		"uuidOrShort": {"somecode000001"},
		"contact":     {"01012345678"},
		"message":     {"please call me"},
	}

	// Act
	h.Register(w, newRegisterRequest(form))

	// Assert
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/q/SOMECODE000001", w.Header().Get("Location"))
	assert.Equal(t, "somecode000001", captured.ID)
	assert.Equal(t, "01012345678", captured.Contact)
	assert.Equal(t, "please call me", captured.Message)
}

// TestRegister_LegacyUUIDField проверяет поддержку старого имени поля uuid
func TestRegister_LegacyUUIDField(t *testing.T) {
	// Arrange
	var captured usecase.RegisterRequest
	mock := &mockUsecase{
		RegisterFunc: func(_ context.Context, req usecase.RegisterRequest) (model.Code, error) {
			captured = req
			return "SOMECODE000001", nil
		},
	}
	h := New(mock, zap.NewNop())
	w := httptest.NewRecorder()

	form := url.Values{
		"uuid":    {"0e3b32f8-5a22-4d28-9c83-6b1f4a2d9e01"},
		"contact": {"01012345678"},
	}

	// Act
	h.Register(w, newRegisterRequest(form))

	// Assert
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "0e3b32f8-5a22-4d28-9c83-6b1f4a2d9e01", captured.ID)
}

// TestRegister_ErrorMapping проверяет отображение ошибок регистрации
// в HTTP статусы
func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "Missing contact", err: usecase.ErrMissingContact, expectedStatus: http.StatusBadRequest},
		{name: "Already activated", err: usecase.ErrAlreadyActivated, expectedStatus: http.StatusConflict},
		{name: "Disabled", err: usecase.ErrDisabled, expectedStatus: http.StatusGone},
		{name: "Not found", err: usecase.ErrNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mock := &mockUsecase{
				RegisterFunc: func(_ context.Context, _ usecase.RegisterRequest) (model.Code, error) {
					return "", tt.err
				},
			}
			h := New(mock, zap.NewNop())
			w := httptest.NewRecorder()

			form := url.Values{"uuidOrShort": {"whatever"}}

			// Act
			h.Register(w, newRegisterRequest(form))

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
