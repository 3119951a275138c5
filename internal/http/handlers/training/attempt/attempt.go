// Package attempt реализует HTTP-обработчик ответа пользователя на сценарий.
//
// Handler принимает выбор пользователя (фишинг или нет), записывает попытку
// и возвращает, был ли ответ верным.
package attempt

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
)

// Request — выбор пользователя для сценария. Поле scenario_id используется
// маршрутом без ID в пути: мобильный клиент шлет его в теле запроса.
type Request struct {
	ScenarioID int `json:"scenario_id"`
	Choice     int `json:"choice" validate:"oneof=0 1"`
}

// Service описывает интерфейс записи попытки прохождения сценария.
type Service interface {
	RecordAttempt(ctx context.Context, userUID string, scenarioID, choice int) (bool, error)
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
// @Summary Ответить на сценарий
// @Description Записывает попытку пользователя и возвращает, был ли ответ верным.
// @Tags Training
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int false "ID сценария; на маршруте /train/attempt передается в теле как scenario_id"
// @Param request body Request true "Выбор пользователя: 1 — фишинг, 0 — безопасно"
// @Success 200 {object} map[string]any "Результат попытки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ID или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Сценарий не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при записи попытки"
// @Router /training/scenarios/{id}/attempt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.training.attempt"
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

	scenarioID := req.ScenarioID
	if idStr := chi.URLParam(r, "id"); idStr != "" {
		var err error
		scenarioID, err = strconv.Atoi(idStr)
		if err != nil {
			log.Error("invalid scenario id format", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid scenario id"))
			return
		}
	}
	if scenarioID <= 0 {
		log.Error("scenario id is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid scenario id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	correct, err := h.service.RecordAttempt(r.Context(), userUID, scenarioID, req.Choice)
	if err != nil {
		log.Error("failed to record attempt", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("could not record attempt"))
		return
	}

	log.Info("attempt recorded", slog.Bool("correct", correct))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"correct": correct,
	}))
}
