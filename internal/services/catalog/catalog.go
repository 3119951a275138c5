// Package services содержит бизнес-логику каталога: авторские модули,
// сценарии и публичную выдачу с кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// catalogCacheKey — ключ кеша публичного каталога.
const catalogCacheKey = "catalog:modules"

// CatalogRepository определяет методы для работы с каталогом в хранилище.
type CatalogRepository interface {
	// CreateModule добавляет модуль провайдера и возвращает его ID.
	CreateModule(ctx context.Context, providerUID, title, description string, price int64) (int, error)
	// ListCatalogModules возвращает все модули с email провайдера, новые первыми.
	ListCatalogModules(ctx context.Context) ([]models.CatalogModule, error)
	// ListModulesByProvider возвращает модули провайдера, новые первыми.
	ListModulesByProvider(ctx context.Context, providerUID string) ([]*models.Module, error)
	// GetModuleProvider возвращает UID владельца модуля.
	GetModuleProvider(ctx context.Context, moduleID int) (string, error)
	// CreateScenario добавляет сценарий и возвращает его ID.
	CreateScenario(ctx context.Context, scenario models.Scenario) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует операции каталога и провайдерские операции.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListCatalog возвращает публичный каталог, по возможности из кеша.
func (s *CatalogService) ListCatalog(ctx context.Context) ([]models.CatalogModule, error) {
	var cached []models.CatalogModule
	found, err := s.cache.Get(catalogCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read catalog cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListCatalogModules(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(catalogCacheKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache catalog", slog.Any("err", err))
	}
	return result, nil
}

// CreateModule создает модуль текущего провайдера и сбрасывает кеш каталога.
// Заголовок обязателен после обрезки пробелов, цена не может быть отрицательной.
func (s *CatalogService) CreateModule(ctx context.Context, providerUID, title, description string, price int64) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("%w: title must not be empty", apperr.ErrValidation)
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", apperr.ErrValidation)
	}

	id, err := s.repo.CreateModule(ctx, providerUID, title, strings.TrimSpace(description), price)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new module", slog.Int("id", id))

	if err := s.cache.Invalidate(catalogCacheKey); err != nil {
		s.log.Warn("failed to invalidate catalog cache", slog.Any("err", err))
	}
	return id, nil
}

// ListMyModules возвращает модули текущего провайдера.
func (s *CatalogService) ListMyModules(ctx context.Context, providerUID string) ([]*models.Module, error) {
	return s.repo.ListModulesByProvider(ctx, providerUID)
}

// CreateScenario создает сценарий модуля. Провайдер должен владеть модулем,
// иначе возвращается apperr.ErrNotOwner.
func (s *CatalogService) CreateScenario(ctx context.Context, providerUID string, moduleID int, channelName, prompt string, correctChoice int) (int, error) {
	channel, ok := models.ParseChannel(channelName)
	if !ok {
		return 0, fmt.Errorf("%w: unknown channel %q", apperr.ErrValidation, channelName)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return 0, fmt.Errorf("%w: prompt must not be empty", apperr.ErrValidation)
	}
	if correctChoice != 0 && correctChoice != 1 {
		return 0, fmt.Errorf("%w: correct_choice must be 0 or 1", apperr.ErrValidation)
	}

	ownerUID, err := s.repo.GetModuleProvider(ctx, moduleID)
	if err != nil {
		return 0, err
	}
	if ownerUID != providerUID {
		return 0, apperr.ErrNotOwner
	}

	id, err := s.repo.CreateScenario(ctx, models.Scenario{
		ModuleID:      moduleID,
		Channel:       channel,
		Prompt:        prompt,
		CorrectChoice: correctChoice,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("created new scenario", slog.Int("id", id), slog.Int("module_id", moduleID))
	return id, nil
}
