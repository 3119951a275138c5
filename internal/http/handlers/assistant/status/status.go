// Package status реализует HTTP-обработчик состояния генератора текста.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/response"
	assistant "github.com/magabrotheeeer/phishguard/internal/services/assistant"
)

// Service описывает интерфейс проверки генератора текста.
type Service interface {
	CheckStatus(ctx context.Context) assistant.Status
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
// @Summary Состояние генератора текста
// @Description Возвращает готовность генератора, имя модели и подсказку при недоступности.
// @Tags Assistant
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Состояние генератора"
// @Router /assistant/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assistant.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	st := h.service.CheckStatus(r.Context())

	log.Info("assistant status checked", slog.Bool("ready", st.Ready))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"ready": st.Ready,
		"model": st.Model,
		"hint":  st.Hint,
	}))
}
