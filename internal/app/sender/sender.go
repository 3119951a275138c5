package sender

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/phishguard/internal/config"
	"github.com/magabrotheeeer/phishguard/internal/lib/smtp"
	"github.com/magabrotheeeer/phishguard/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/phishguard/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(logger, newTransport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, rabbitmq.QueuePurchase, a.senderService.SendPurchaseReceipt)
	if err != nil {
		a.logger.Error("failed to start purchase receipts consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("receipt sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
