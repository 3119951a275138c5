package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateModule(ctx context.Context, providerUID, title, description string, price int64) (int, error) {
	args := m.Called(ctx, providerUID, title, description, price)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListCatalogModules(ctx context.Context) ([]models.CatalogModule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CatalogModule), args.Error(1)
}
func (m *RepoMock) ListModulesByProvider(ctx context.Context, providerUID string) ([]*models.Module, error) {
	args := m.Called(ctx, providerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Module), args.Error(1)
}
func (m *RepoMock) GetModuleProvider(ctx context.Context, moduleID int) (string, error) {
	args := m.Called(ctx, moduleID)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) CreateScenario(ctx context.Context, scenario models.Scenario) (int, error) {
	args := m.Called(ctx, scenario)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCatalogService_ListCatalog(t *testing.T) {
	catalog := []models.CatalogModule{
		{ID: 2, Title: "SMS scams", ProviderEmail: "pro@example.com", Price: 30},
		{ID: 1, Title: "Email basics", ProviderEmail: "pro@example.com", Price: 20},
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		want       []models.CatalogModule
		wantErr    bool
	}{
		{
			name: "промах кеша идет в хранилище и кеширует",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "catalog:modules", mock.Anything).Return(false, nil)
				r.On("ListCatalogModules", mock.Anything).Return(catalog, nil)
				c.On("Set", "catalog:modules", catalog, 5*time.Minute).Return(nil)
			},
			want: catalog,
		},
		{
			name: "ошибка кеша не мешает выдаче",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "catalog:modules", mock.Anything).Return(false, errors.New("redis down"))
				r.On("ListCatalogModules", mock.Anything).Return(catalog, nil)
				c.On("Set", "catalog:modules", catalog, 5*time.Minute).Return(errors.New("redis down"))
			},
			want: catalog,
		},
		{
			name: "ошибка хранилища",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "catalog:modules", mock.Anything).Return(false, nil)
				r.On("ListCatalogModules", mock.Anything).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := NewCatalogService(repo, cache, newNoopLogger())
			got, err := svc.ListCatalog(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestCatalogService_CreateModule(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		price      int64
		setupMocks func(r *RepoMock, c *CacheMock)
		wantID     int
		wantErr    bool
		wantErrIs  error
	}{
		{
			name:  "успешное создание сбрасывает кеш",
			title: "  Email basics  ",
			price: 20,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateModule", mock.Anything, "prov-1", "Email basics", "", int64(20)).Return(11, nil)
				c.On("Invalidate", "catalog:modules").Return(nil)
			},
			wantID: 11,
		},
		{
			name:       "пустой заголовок",
			title:      "   ",
			price:      20,
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    true,
			wantErrIs:  apperr.ErrValidation,
		},
		{
			name:       "отрицательная цена",
			title:      "Email basics",
			price:      -1,
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    true,
			wantErrIs:  apperr.ErrValidation,
		},
		{
			name:  "бесплатный модуль разрешен",
			title: "Free intro",
			price: 0,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateModule", mock.Anything, "prov-1", "Free intro", "", int64(0)).Return(12, nil)
				c.On("Invalidate", "catalog:modules").Return(nil)
			},
			wantID: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := NewCatalogService(repo, cache, newNoopLogger())
			id, err := svc.CreateModule(context.Background(), "prov-1", tt.title, "", tt.price)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestCatalogService_CreateScenario(t *testing.T) {
	tests := []struct {
		name       string
		channel    string
		prompt     string
		choice     int
		setupMocks func(r *RepoMock)
		wantID     int
		wantErr    error
	}{
		{
			name:    "успешное создание",
			channel: "EMAIL",
			prompt:  "Urgent: verify your account",
			choice:  1,
			setupMocks: func(r *RepoMock) {
				r.On("GetModuleProvider", mock.Anything, 5).Return("prov-1", nil)
				r.On("CreateScenario", mock.Anything, models.Scenario{
					ModuleID:      5,
					Channel:       models.ChannelEmail,
					Prompt:        "Urgent: verify your account",
					CorrectChoice: 1,
				}).Return(33, nil)
			},
			wantID: 33,
		},
		{
			name:    "чужой модуль",
			channel: "SMS",
			prompt:  "You won a prize",
			choice:  1,
			setupMocks: func(r *RepoMock) {
				r.On("GetModuleProvider", mock.Anything, 5).Return("prov-2", nil)
			},
			wantErr: apperr.ErrNotOwner,
		},
		{
			name:    "модуль не найден",
			channel: "SMS",
			prompt:  "You won a prize",
			choice:  1,
			setupMocks: func(r *RepoMock) {
				r.On("GetModuleProvider", mock.Anything, 5).Return("", apperr.ErrModuleNotFound)
			},
			wantErr: apperr.ErrModuleNotFound,
		},
		{
			name:       "неизвестный канал",
			channel:    "CARRIER_PIGEON",
			prompt:     "hello",
			choice:     0,
			setupMocks: func(_ *RepoMock) {},
			wantErr:    apperr.ErrValidation,
		},
		{
			name:       "пустой текст сценария",
			channel:    "WEB",
			prompt:     "  ",
			choice:     0,
			setupMocks: func(_ *RepoMock) {},
			wantErr:    apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo)

			svc := NewCatalogService(repo, cache, newNoopLogger())
			id, err := svc.CreateScenario(context.Background(), "prov-1", 5, tt.channel, tt.prompt, tt.choice)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
		})
	}
}
