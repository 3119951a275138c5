// Package services содержит бизнес-логику кошелька: баланс, пополнение
// и покупку модулей с ведением леджера.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/models"
	"github.com/magabrotheeeer/phishguard/internal/rabbitmq"
)

// LedgerRepository определяет операции кошелька в хранилище.
// Каждая мутация выполняется хранилищем как одна транзакция БД.
type LedgerRepository interface {
	// GetBalance возвращает баланс пользователя, 0 если кошелька нет.
	GetBalance(ctx context.Context, userUID string) (int64, error)
	// TopupWallet увеличивает баланс и пишет TOPUP-транзакцию, возвращает новый баланс.
	TopupWallet(ctx context.Context, userUID string, amount int64) (int64, error)
	// PurchaseModule списывает цену, создает покупку и PURCHASE-транзакцию.
	PurchaseModule(ctx context.Context, userUID string, moduleID int) (int64, *models.Module, error)
	// GetUser нужен для адресата квитанции.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// ReceiptPublisher публикует события покупок для отправки квитанций.
type ReceiptPublisher interface {
	Publish(routingKey string, message any) error
}

// WalletService реализует операции с балансом и леджером.
type WalletService struct {
	repo      LedgerRepository
	publisher ReceiptPublisher
	log       *slog.Logger
}

// NewWalletService создает новый экземпляр WalletService.
func NewWalletService(repo LedgerRepository, publisher ReceiptPublisher, log *slog.Logger) *WalletService {
	return &WalletService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Balance возвращает текущий баланс пользователя.
func (s *WalletService) Balance(ctx context.Context, userUID string) (int64, error) {
	return s.repo.GetBalance(ctx, userUID)
}

// Topup пополняет кошелек. Сумма должна быть строго положительной;
// при нарушении хранилище не вызывается и баланс не меняется.
func (s *WalletService) Topup(ctx context.Context, userUID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
	}

	credits, err := s.repo.TopupWallet(ctx, userUID, amount)
	if err != nil {
		return 0, err
	}
	s.log.Info("wallet topup", slog.String("user_uid", userUID), slog.Int64("amount", amount))
	return credits, nil
}

// Purchase покупает модуль за кредиты и публикует событие для квитанции.
// Ошибка публикации только логируется: покупка уже зафиксирована в БД.
func (s *WalletService) Purchase(ctx context.Context, userUID string, moduleID int) (int64, error) {
	credits, module, err := s.repo.PurchaseModule(ctx, userUID, moduleID)
	if err != nil {
		return 0, err
	}
	s.log.Info("module purchased",
		slog.String("user_uid", userUID),
		slog.Int("module_id", moduleID),
		slog.Int64("price", module.Price))

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		s.log.Warn("failed to load buyer for receipt", slog.Any("err", err))
		return credits, nil
	}
	receipt := models.PurchaseReceipt{
		Email:       user.Email,
		ModuleTitle: module.Title,
		Price:       module.Price,
		Credits:     credits,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyPurchase, receipt); err != nil {
		s.log.Warn("failed to publish purchase receipt", slog.Any("err", err))
	}
	return credits, nil
}
