// Package storage реализует хранилище данных на основе PostgreSQL
// для пользователей, каталога модулей, кошельков и леджера транзакций.
// Все запросы параметризованы; многошаговые операции с кошельком
// выполняются в одной явной транзакции.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// ServerTime возвращает текущее время сервера БД, используется в /db/ping.
func (s *Storage) ServerTime(ctx context.Context) (time.Time, error) {
	const op = "storage.ServerTime"

	var now time.Time
	if err := s.DB.QueryRowContext(ctx, `SELECT now()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return now, nil
}
