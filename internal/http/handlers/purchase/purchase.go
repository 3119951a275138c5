// Package purchase реализует HTTP-обработчик покупки модуля обучения.
//
// Handler списывает стоимость модуля с кошелька пользователя, записывает покупку
// и транзакцию в едином DB-транзакционном блоке и возвращает новый баланс.
package purchase

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
)

// Service описывает интерфейс покупки модуля.
type Service interface {
	Purchase(ctx context.Context, userUID string, moduleID int) (int64, error)
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
// @Summary Купить модуль обучения
// @Description Списывает стоимость модуля с кошелька и открывает доступ к тренировке.
// @Tags Wallet
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID модуля"
// @Success 200 {object} map[string]any "Новый баланс"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или недостаточно кредитов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Модуль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при покупке"
// @Router /catalog/modules/{id}/purchase [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.purchase"
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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	credits, err := h.service.Purchase(r.Context(), userUID, moduleID)
	if err != nil {
		log.Error("failed to purchase module", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("could not purchase module"))
		return
	}

	log.Info("module purchased", slog.Int("module_id", moduleID), slog.Int64("credits", credits))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"credits": credits,
	}))
}
