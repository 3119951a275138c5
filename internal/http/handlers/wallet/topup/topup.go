// Package topup реализует HTTP-обработчик пополнения кошелька пользователя.
//
// Handler принимает JSON-запрос с положительной суммой, пополняет кошелек
// через сервис и возвращает новый баланс.
package topup

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
)

// Request — сумма пополнения в кредитах
type Request struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// Service описывает интерфейс пополнения кошелька.
type Service interface {
	Topup(ctx context.Context, userUID string, amount int64) (int64, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Пополнить кошелек
// @Description Зачисляет кредиты на кошелек пользователя и возвращает новый баланс.
// @Tags Wallet
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Сумма пополнения"
// @Success 200 {object} map[string]any "Новый баланс"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при пополнении"
// @Router /wallet/topup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wallet.topup"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	credits, err := h.service.Topup(r.Context(), userUID, req.Amount)
	if err != nil {
		log.Error("failed to topup wallet", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("could not topup wallet"))
		return
	}

	log.Info("wallet topped up", slog.Int64("credits", credits))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"credits": credits,
	}))
}
