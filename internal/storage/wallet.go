package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// GetBalance возвращает текущий баланс кредитов пользователя.
// Отсутствующая строка или NULL трактуются как нулевой баланс.
func (s *Storage) GetBalance(ctx context.Context, userUID string) (int64, error) {
	const op = "storage.GetBalance"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var credits sql.NullInt64
	err := s.DB.QueryRowContext(ctx,
		`SELECT credits FROM wallets WHERE user_uid = $1`, userUID).Scan(&credits)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !credits.Valid {
		return 0, nil
	}
	return credits.Int64, nil
}

// TopupWallet увеличивает баланс на amount и пишет TOPUP-транзакцию
// в леджер. Обе записи фиксируются одной транзакцией БД; возвращает
// новый баланс.
func (s *Storage) TopupWallet(ctx context.Context, userUID string, amount int64) (int64, error) {
	const op = "storage.TopupWallet"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newCredits int64
	query := `UPDATE wallets SET credits = credits + $1
			  WHERE user_uid = $2
			  RETURNING credits`
	if err = tx.QueryRowContext(ctx, query, amount, userUID).Scan(&newCredits); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (user_uid, amount, kind) VALUES ($1, $2, $3)`,
		userUID, amount, string(models.TransactionTopup))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newCredits, nil
}

// PurchaseModule списывает цену модуля с кошелька, создает запись о покупке
// и PURCHASE-транзакцию на отрицательную сумму. Вся операция выполняется
// в одной транзакции БД; строка кошелька блокируется через FOR UPDATE,
// поэтому параллельные покупки не могут увести баланс в минус.
//
// Повторная покупка того же модуля разрешена и списывает цену снова.
func (s *Storage) PurchaseModule(ctx context.Context, userUID string, moduleID int) (int64, *models.Module, error) {
	const op = "storage.PurchaseModule"
	select {
	case <-ctx.Done():
		return 0, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var module models.Module
	query := `SELECT id, provider_uid, title, description, price, created_at
			  FROM modules
			  WHERE id = $1`
	row := tx.QueryRowContext(ctx, query, moduleID)
	if err = row.Scan(&module.ID, &module.ProviderUID, &module.Title, &module.Description,
		&module.Price, &module.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, fmt.Errorf("%s: %w", op, apperr.ErrModuleNotFound)
		}
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	var credits int64
	err = tx.QueryRowContext(ctx,
		`SELECT credits FROM wallets WHERE user_uid = $1 FOR UPDATE`, userUID).Scan(&credits)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	if credits < module.Price {
		return 0, nil, fmt.Errorf("%s: %w", op, apperr.ErrInsufficientFunds)
	}

	var newCredits int64
	err = tx.QueryRowContext(ctx,
		`UPDATE wallets SET credits = credits - $1 WHERE user_uid = $2 RETURNING credits`,
		module.Price, userUID).Scan(&newCredits)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO purchases (user_uid, module_id) VALUES ($1, $2)`, userUID, moduleID)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (user_uid, amount, kind) VALUES ($1, $2, $3)`,
		userUID, -module.Price, string(models.TransactionPurchase))
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	return newCredits, &module, nil
}
