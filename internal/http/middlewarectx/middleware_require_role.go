package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/phishguard/internal/http/response"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// RequireRole возвращает middleware, пропускающий запрос только если роль
// пользователя в контексте совпадает с требуемой. Иначе — 403 Forbidden.
func RequireRole(required models.Role, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(models.Role)
			if !ok {
				log.Error("role missing in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			if role != required {
				log.Error("access denied for role",
					slog.String("role", string(role)),
					slog.String("required", string(required)))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
