// Package register реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler принимает JSON-запрос с email, паролем и ролью, валидирует данные,
// создает пользователя через сервис аутентификации и возвращает JWT токен и роль.
package register

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
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// Request — входные данные для регистрации
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// Service описывает интерфейс сервиса регистрации пользователя.
type Service interface {
	Register(ctx context.Context, email, rawPassword, roleName string) (string, models.Role, error)
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
// @Summary Регистрация нового пользователя
// @Description Создает пользователя с ролью CUSTOMER или PROVIDER, возвращает JWT токен и роль.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} map[string]any "Токен и роль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или email уже занят"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	token, role, err := h.service.Register(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("role", string(role)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
		"role":  string(role),
	}))
}
