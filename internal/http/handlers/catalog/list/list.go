// Package list реализует HTTP-обработчик публичного каталога модулей обучения.
//
// Handler возвращает все опубликованные модули с email их провайдеров.
// Результат кэшируется сервисом каталога.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// Service описывает интерфейс получения каталога модулей.
type Service interface {
	ListCatalog(ctx context.Context) ([]models.CatalogModule, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог модулей обучения
// @Description Возвращает список всех опубликованных модулей фишинг-тренировок.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Список модулей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /catalog/modules [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	modules, err := h.service.ListCatalog(r.Context())
	if err != nil {
		log.Error("failed to list catalog", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list catalog"))
		return
	}

	log.Info("catalog listed", slog.Int("count", len(modules)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"modules": modules,
	}))
}
