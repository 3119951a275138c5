package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// CreateModule вставляет новый модуль провайдера и возвращает его ID.
func (s *Storage) CreateModule(ctx context.Context, providerUID, title, description string, price int64) (int, error) {
	const op = "storage.CreateModule"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO modules (provider_uid, title, description, price)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, providerUID, title, description, price).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCatalogModules возвращает все модули каталога с email провайдера,
// новые первыми. Доступно без аутентификации.
func (s *Storage) ListCatalogModules(ctx context.Context) ([]models.CatalogModule, error) {
	const op = "storage.ListCatalogModules"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.title, m.description, m.price, u.email
			  FROM modules m
			  JOIN users u ON m.provider_uid = u.uid
			  ORDER BY m.id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.CatalogModule
	for rows.Next() {
		var item models.CatalogModule
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Price,
			&item.ProviderEmail); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListModulesByProvider возвращает модули провайдера, новые первыми.
func (s *Storage) ListModulesByProvider(ctx context.Context, providerUID string) ([]*models.Module, error) {
	const op = "storage.ListModulesByProvider"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, provider_uid, title, description, price, created_at
			  FROM modules
			  WHERE provider_uid = $1
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query, providerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Module
	for rows.Next() {
		var item models.Module
		if err := rows.Scan(&item.ID, &item.ProviderUID, &item.Title, &item.Description,
			&item.Price, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetModuleProvider возвращает UID провайдера-владельца модуля.
func (s *Storage) GetModuleProvider(ctx context.Context, moduleID int) (string, error) {
	const op = "storage.GetModuleProvider"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var providerUID string
	err := s.DB.QueryRowContext(ctx,
		`SELECT provider_uid FROM modules WHERE id = $1`, moduleID).Scan(&providerUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, apperr.ErrModuleNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return providerUID, nil
}
