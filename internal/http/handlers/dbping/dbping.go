// Package dbping реализует HTTP-обработчик проверки доступности базы данных.
package dbping

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
)

// Service описывает интерфейс проверки соединения с базой данных.
type Service interface {
	ServerTime(ctx context.Context) (time.Time, error)
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
// @Summary Проверка соединения с базой данных
// @Description Выполняет запрос к базе данных и возвращает её текущее время.
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Время базы данных"
// @Failure 500 {object} response.ErrorResponse "База данных недоступна"
// @Router /db/ping [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dbping"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	now, err := h.service.ServerTime(r.Context())
	if err != nil {
		log.Error("database ping failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"db_time": now,
	}))
}
