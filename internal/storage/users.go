package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// RegisterUser сохраняет нового пользователя вместе с пустым кошельком
// и возвращает его UID. Пользователь и кошелек создаются в одной транзакции.
// Занятый email определяется по уникальному ограничению users.email,
// поэтому параллельные регистрации одного адреса не дают гонки.
func (s *Storage) RegisterUser(ctx context.Context, email, passwordHash string, role models.Role) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var roleID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM roles WHERE name = $1`, string(role)).Scan(&roleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, apperr.ErrUnknownRole)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, role_id)
			  VALUES ($1, $2, $3)
			  RETURNING uid`
	if err = tx.QueryRowContext(ctx, query, email, passwordHash, roleID).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, apperr.ErrEmailTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO wallets (user_uid, credits) VALUES ($1, 0)`, newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email.
//
// Если пользователь не найден, возвращает apperr.ErrInvalidCredentials:
// вызывающий не должен различать неизвестный email и неверный пароль.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.email, u.password_hash, r.name, u.created_at
			  FROM users u
			  JOIN roles r ON u.role_id = r.id
			  WHERE u.email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.email, u.password_hash, r.name, u.created_at
			  FROM users u
			  JOIN roles r ON u.role_id = r.id
			  WHERE u.uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
