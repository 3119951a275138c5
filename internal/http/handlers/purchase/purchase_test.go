package purchase

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Purchase(ctx context.Context, userUID string, moduleID int) (int64, error) {
	args := m.Called(ctx, userUID, moduleID)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestPurchaseHandler(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		idParam        string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешная покупка",
			idParam: "7",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "uid-1", 7).Return(int64(60), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"credits":60`,
		},
		{
			name:    "недостаточно кредитов",
			idParam: "7",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "uid-1", 7).
					Return(int64(0), apperr.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"could not purchase module"`,
		},
		{
			name:    "модуль не найден",
			idParam: "404",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "uid-1", 404).
					Return(int64(0), apperr.ErrModuleNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"could not purchase module"`,
		},
		{
			name:           "некорректный id",
			idParam:        "abc",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid module id"`,
		},
		{
			name:           "нет пользователя в контексте",
			idParam:        "7",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/catalog/modules/"+tt.idParam+"/purchase", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.idParam)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
