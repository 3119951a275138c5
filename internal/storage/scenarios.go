package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// CreateScenario вставляет новый сценарий модуля и возвращает его ID.
func (s *Storage) CreateScenario(ctx context.Context, scenario models.Scenario) (int, error) {
	const op = "storage.CreateScenario"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO scenarios (module_id, channel, prompt, correct_choice)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		scenario.ModuleID, string(scenario.Channel), scenario.Prompt, scenario.CorrectChoice).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListScenariosByModule возвращает сценарии модуля по возрастанию ID.
// Правильный ответ в выдачу не попадает.
func (s *Storage) ListScenariosByModule(ctx context.Context, moduleID int) ([]models.TrainingScenario, error) {
	const op = "storage.ListScenariosByModule"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, channel, prompt
			  FROM scenarios
			  WHERE module_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.TrainingScenario
	for rows.Next() {
		var item models.TrainingScenario
		if err := rows.Scan(&item.ID, &item.Channel, &item.Prompt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetScenario возвращает сценарий по ID вместе с правильным ответом.
func (s *Storage) GetScenario(ctx context.Context, scenarioID int) (*models.Scenario, error) {
	const op = "storage.GetScenario"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, module_id, channel, prompt, correct_choice
			  FROM scenarios
			  WHERE id = $1`
	var result models.Scenario
	row := s.DB.QueryRowContext(ctx, query, scenarioID)
	if err := row.Scan(&result.ID, &result.ModuleID, &result.Channel,
		&result.Prompt, &result.CorrectChoice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrScenarioNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// SaveAttempt сохраняет попытку пользователя и возвращает её ID.
func (s *Storage) SaveAttempt(ctx context.Context, attempt models.Attempt) (int, error) {
	const op = "storage.SaveAttempt"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO attempts (user_uid, scenario_id, choice, is_correct)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		attempt.UserUID, attempt.ScenarioID, attempt.Choice, attempt.IsCorrect).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}
