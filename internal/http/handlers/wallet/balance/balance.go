// Package balance реализует HTTP-обработчик баланса кошелька пользователя.
package balance

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
)

// Service описывает интерфейс получения баланса кошелька.
type Service interface {
	Balance(ctx context.Context, userUID string) (int64, error)
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
// @Summary Баланс кошелька
// @Description Возвращает текущее количество кредитов пользователя.
// @Tags Wallet
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Баланс в кредитах"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /wallet/balance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wallet.balance"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	credits, err := h.service.Balance(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get balance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get balance"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"credits": credits,
	}))
}
