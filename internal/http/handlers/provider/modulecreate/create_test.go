package modulecreate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/phishguard/internal/models"
	catalogservice "github.com/magabrotheeeer/phishguard/internal/services/catalog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateModule(ctx context.Context, providerUID, title, description string, price int64) (int, error) {
	args := m.Called(ctx, providerUID, title, description, price)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestModuleCreateHandler(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		body           string
		uid            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание модуля",
			body: `{"title":"Email basics","description":"intro","price":10}`,
			uid:  "prov-1",
			setupMock: func(m *MockService) {
				m.On("CreateModule", mock.Anything, "prov-1", "Email basics", "intro", int64(10)).
					Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":42`,
		},
		{
			name:           "пустой заголовок",
			body:           `{"title":"","price":10}`,
			uid:            "prov-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Title is a required field`,
		},
		{
			name:           "отрицательная цена",
			body:           `{"title":"Email basics","price":-5}`,
			uid:            "prov-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Price is too short`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"title":`,
			uid:            "prov-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "нет uid в контексте",
			body:           `{"title":"Email basics","price":10}`,
			uid:            "",
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

			req := httptest.NewRequest(http.MethodPost, "/provider/modules", strings.NewReader(tt.body))
			if tt.uid != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.uid))
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

type catalogRepoStub struct {
	createCalled bool
}

func (r *catalogRepoStub) CreateModule(_ context.Context, _, _, _ string, _ int64) (int, error) {
	r.createCalled = true
	return 1, nil
}
func (r *catalogRepoStub) ListCatalogModules(_ context.Context) ([]models.CatalogModule, error) {
	return nil, nil
}
func (r *catalogRepoStub) ListModulesByProvider(_ context.Context, _ string) ([]*models.Module, error) {
	return nil, nil
}
func (r *catalogRepoStub) GetModuleProvider(_ context.Context, _ int) (string, error) {
	return "", nil
}
func (r *catalogRepoStub) CreateScenario(_ context.Context, _ models.Scenario) (int, error) {
	return 0, nil
}

type noopCache struct{}

func (noopCache) Get(_ string, _ any) (bool, error)          { return false, nil }
func (noopCache) Set(_ string, _ any, _ time.Duration) error { return nil }
func (noopCache) Invalidate(_ string) error                  { return nil }

// Заголовок из одних пробелов проходит валидатор по длине, но отбрасывается
// доменной проверкой сервиса. Клиент должен получить 400, а не 500.
func TestModuleCreateHandler_BlankTitle(t *testing.T) {
	logger := newNoopLogger()
	repo := &catalogRepoStub{}
	service := catalogservice.NewCatalogService(repo, noopCache{}, logger)
	handler := New(logger, service)

	req := httptest.NewRequest(http.MethodPost, "/provider/modules",
		strings.NewReader(`{"title":"   ","price":5}`))
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "prov-1"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"could not create module"`)
	assert.False(t, repo.createCalled, "repository must not be reached on invalid input")
}
