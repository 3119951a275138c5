// Package phishguard предоставляет маршруты для основного приложения.
package phishguard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/phishguard/internal/http/handlers/assistant/ask"
	assistantstatus "github.com/magabrotheeeer/phishguard/internal/http/handlers/assistant/status"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/auth/register"
	cataloglist "github.com/magabrotheeeer/phishguard/internal/http/handlers/catalog/list"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/dbping"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/health"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/me"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/provider/modulecreate"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/provider/modulelist"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/provider/scenariocreate"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/purchase"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/training/attempt"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/training/scenarios"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/wallet/balance"
	"github.com/magabrotheeeer/phishguard/internal/http/handlers/wallet/topup"
	"github.com/magabrotheeeer/phishguard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/phishguard/internal/models"
	assistantservice "github.com/magabrotheeeer/phishguard/internal/services/assistant"
	authservice "github.com/magabrotheeeer/phishguard/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/phishguard/internal/services/catalog"
	trainingservice "github.com/magabrotheeeer/phishguard/internal/services/training"
	walletservice "github.com/magabrotheeeer/phishguard/internal/services/wallet"
	"github.com/magabrotheeeer/phishguard/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Одни и те же обработчики висят на двух деревьях: корневые пути — это
// контракт мобильного клиента (/purchase/{id}, /train/..., /ai/...),
// /api/v1 — ресурсное дерево для новых интеграций.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage,
	authService *authservice.AuthService,
	catalogService *catalogservice.CatalogService,
	walletService *walletservice.WalletService,
	trainingService *trainingservice.TrainingService,
	assistantService *assistantservice.AssistantService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	registerHandler := register.New(logger, authService)
	loginHandler := login.New(logger, authService)
	healthHandler := health.New(logger)
	dbpingHandler := dbping.New(logger, db)
	catalogHandler := cataloglist.New(logger, catalogService)
	meHandler := me.New(logger, authService)
	balanceHandler := balance.New(logger, walletService)
	topupHandler := topup.New(logger, walletService)
	purchaseHandler := purchase.New(logger, walletService)
	scenariosHandler := scenarios.New(logger, trainingService)
	attemptHandler := attempt.New(logger, trainingService)
	askHandler := ask.New(logger, assistantService)
	statusHandler := assistantstatus.New(logger, assistantService)
	moduleCreateHandler := modulecreate.New(logger, catalogService)
	moduleListHandler := modulelist.New(logger, catalogService)
	scenarioCreateHandler := scenariocreate.New(logger, catalogService)

	// Открытые конечные точки
	r.Post("/auth/register", registerHandler.ServeHTTP)
	r.Post("/auth/login", loginHandler.ServeHTTP)
	r.Get("/health", healthHandler.ServeHTTP)
	r.Get("/db/ping", dbpingHandler.ServeHTTP)
	r.Get("/catalog/modules", catalogHandler.ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/me", meHandler.ServeHTTP)
		r.Get("/wallet/balance", balanceHandler.ServeHTTP)
		r.Post("/wallet/topup", topupHandler.ServeHTTP)
		r.Post("/purchase/{id}", purchaseHandler.ServeHTTP)
		r.Get("/train/{id}/scenarios", scenariosHandler.ServeHTTP)
		r.Post("/train/attempt", attemptHandler.ServeHTTP)
		r.Post("/ai/ask", askHandler.ServeHTTP)
		r.Get("/ai/status", statusHandler.ServeHTTP)

		// Группа провайдера
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRole(models.RoleProvider, logger))
			r.Post("/provider/modules", moduleCreateHandler.ServeHTTP)
			r.Get("/provider/modules", moduleListHandler.ServeHTTP)
			r.Post("/provider/modules/{id}/scenarios", scenarioCreateHandler.ServeHTTP)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", registerHandler.ServeHTTP)
		r.Post("/auth/login", loginHandler.ServeHTTP)
		r.Get("/health", healthHandler.ServeHTTP)
		r.Get("/db/ping", dbpingHandler.ServeHTTP)
		r.Get("/catalog/modules", catalogHandler.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/me", meHandler.ServeHTTP)
			r.Get("/wallet/balance", balanceHandler.ServeHTTP)
			r.Post("/wallet/topup", topupHandler.ServeHTTP)
			r.Post("/catalog/modules/{id}/purchase", purchaseHandler.ServeHTTP)
			r.Get("/training/modules/{id}/scenarios", scenariosHandler.ServeHTTP)
			r.Post("/training/scenarios/{id}/attempt", attemptHandler.ServeHTTP)
			r.Post("/assistant/ask", askHandler.ServeHTTP)
			r.Get("/assistant/status", statusHandler.ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleProvider, logger))
				r.Post("/provider/modules", moduleCreateHandler.ServeHTTP)
				r.Get("/provider/modules", moduleListHandler.ServeHTTP)
				r.Post("/provider/modules/{id}/scenarios", scenarioCreateHandler.ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
