package phishguard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/phishguard/internal/cache"
	"github.com/magabrotheeeer/phishguard/internal/config"
	"github.com/magabrotheeeer/phishguard/internal/lib/jwt"
	"github.com/magabrotheeeer/phishguard/internal/migrations"
	"github.com/magabrotheeeer/phishguard/internal/ollama"
	"github.com/magabrotheeeer/phishguard/internal/rabbitmq"
	assistantservice "github.com/magabrotheeeer/phishguard/internal/services/assistant"
	authservice "github.com/magabrotheeeer/phishguard/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/phishguard/internal/services/catalog"
	trainingservice "github.com/magabrotheeeer/phishguard/internal/services/training"
	walletservice "github.com/magabrotheeeer/phishguard/internal/services/wallet"
	"github.com/magabrotheeeer/phishguard/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	ollamaClient := ollama.NewClient(cfg.Ollama.AddressOllama, cfg.Ollama.Model, cfg.Ollama.TimeoutOllama)

	authService := authservice.NewAuthService(db, jwtMaker)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	walletService := walletservice.NewWalletService(db, publisher, logger)
	trainingService := trainingservice.NewTrainingService(db, logger)
	assistantService := assistantservice.NewAssistantService(ollamaClient, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db,
		authService, catalogService, walletService, trainingService, assistantService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.Close()
		return err
	}
}
