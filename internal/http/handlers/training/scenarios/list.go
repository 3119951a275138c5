// Package scenarios реализует HTTP-обработчик списка сценариев модуля обучения.
//
// Handler возвращает сценарии модуля без поля верного ответа.
package scenarios

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// Service описывает интерфейс получения сценариев модуля.
type Service interface {
	ListScenarios(ctx context.Context, moduleID int) ([]models.TrainingScenario, error)
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
// @Summary Сценарии модуля обучения
// @Description Возвращает сценарии модуля. Поле верного ответа не раскрывается.
// @Tags Training
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID модуля"
// @Success 200 {object} map[string]any "Список сценариев"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /training/modules/{id}/scenarios [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.training.scenarios"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	moduleID, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid module id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid module id"))
		return
	}

	items, err := h.service.ListScenarios(r.Context(), moduleID)
	if err != nil {
		log.Error("failed to list scenarios", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("could not list scenarios"))
		return
	}

	log.Info("scenarios listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"scenarios": items,
	}))
}
