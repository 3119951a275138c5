// Package scenariocreate реализует HTTP-обработчик добавления сценария в модуль.
//
// Handler принимает JSON-запрос с каналом, текстом сценария и верным ответом,
// проверяет владение модулем и создает сценарий через сервис каталога.
package scenariocreate

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

// Request — входные данные нового сценария
type Request struct {
	Channel       string `json:"channel" validate:"required,oneof=EMAIL SMS WEB"`
	Prompt        string `json:"prompt" validate:"required"`
	CorrectChoice int    `json:"correct_choice" validate:"oneof=0 1"`
}

// Service описывает интерфейс создания сценария.
type Service interface {
	CreateScenario(ctx context.Context, providerUID string, moduleID int, channelName, prompt string, correctChoice int) (int, error)
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
// @Summary Добавить сценарий в модуль
// @Description Создает новый сценарий фишинг-тренировки в модуле текущего провайдера.
// @Tags Provider
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID модуля"
// @Param request body Request true "Данные нового сценария"
// @Success 200 {object} map[string]any "ID созданного сценария"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ID или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Модуль принадлежит другому провайдеру"
// @Failure 404 {object} response.ErrorResponse "Модуль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании сценария"
// @Router /provider/modules/{id}/scenarios [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.scenariocreate"
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

	providerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || providerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.CreateScenario(r.Context(), providerUID, moduleID, req.Channel, req.Prompt, req.CorrectChoice)
	if err != nil {
		log.Error("failed to create scenario", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("could not create scenario"))
		return
	}

	log.Info("scenario created", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
