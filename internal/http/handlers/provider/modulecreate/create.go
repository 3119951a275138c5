// Package modulecreate реализует HTTP-обработчик создания модуля обучения провайдером.
//
// Handler принимает JSON-запрос с данными модуля, валидирует их, извлекает uid
// провайдера из контекста, создает модуль через сервис каталога и возвращает ID записи.
package modulecreate

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

// Request — входные данные нового модуля
type Request struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"min=0"`
}

// Service описывает интерфейс создания модуля обучения.
type Service interface {
	CreateModule(ctx context.Context, providerUID, title, description string, price int64) (int, error)
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
// @Summary Создать модуль обучения
// @Description Создает новый модуль фишинг-тренировки для текущего провайдера.
// @Tags Provider
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные нового модуля"
// @Success 200 {object} map[string]any "ID созданного модуля"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только для провайдеров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании модуля"
// @Router /provider/modules [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.modulecreate"
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

	providerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || providerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.CreateModule(r.Context(), providerUID, req.Title, req.Description, req.Price)
	if err != nil {
		log.Error("failed to create module", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("could not create module"))
		return
	}

	log.Info("module created", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
