// Package me реализует HTTP-обработчик информации о текущем пользователе.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// Service описывает интерфейс получения данных пользователя.
type Service interface {
	CurrentUser(ctx context.Context, userUID string) (*models.User, error)
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
// @Summary Текущий пользователь
// @Description Возвращает uid, email и роль пользователя из JWT токена.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Данные пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.me"

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

	user, err := h.service.CurrentUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("failed to get user"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":   user.UID,
		"email": user.Email,
		"role":  string(user.Role),
	}))
}
