// Package modulelist реализует HTTP-обработчик списка модулей текущего провайдера.
package modulelist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// Service описывает интерфейс получения модулей провайдера.
type Service interface {
	ListMyModules(ctx context.Context, providerUID string) ([]*models.Module, error)
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
// @Summary Модули текущего провайдера
// @Description Возвращает все модули, созданные текущим провайдером.
// @Tags Provider
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список модулей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только для провайдеров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /provider/modules [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.modulelist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	providerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || providerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	modules, err := h.service.ListMyModules(r.Context(), providerUID)
	if err != nil {
		log.Error("failed to list modules", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list modules"))
		return
	}

	log.Info("modules listed", slog.Int("count", len(modules)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"modules": modules,
	}))
}
