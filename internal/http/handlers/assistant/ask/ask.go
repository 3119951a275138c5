// Package ask реализует HTTP-обработчик вопросов к ассистенту по фишинг-безопасности.
//
// Handler передает вопрос пользователя генератору текста, а при его недоступности
// возвращает заготовленный совет. Эндпоинт никогда не отвечает ошибкой из-за
// недоступности генератора.
package ask

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
	assistant "github.com/magabrotheeeer/phishguard/internal/services/assistant"
)

// Request — вопрос пользователя
type Request struct {
	Question string `json:"question" validate:"required,min=1"`
}

// Service описывает интерфейс ассистента.
type Service interface {
	Ask(ctx context.Context, question string) assistant.Answer
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
// @Summary Задать вопрос ассистенту
// @Description Возвращает совет по фишинг-безопасности от генератора текста или заготовленный ответ.
// @Tags Assistant
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Вопрос пользователя"
// @Success 200 {object} map[string]any "Ответ ассистента и его источник"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Router /assistant/ask [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assistant.ask"
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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	answer := h.service.Ask(r.Context(), req.Question)

	log.Info("assistant answered", slog.String("source", answer.Source))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"answer": answer.Answer,
		"source": answer.Source,
	}))
}
