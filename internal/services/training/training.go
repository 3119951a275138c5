// Package services содержит бизнес-логику тренировки: выдачу сценариев
// и фиксацию попыток.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/phishguard/internal/models"
)

// TrainingRepository определяет методы тренировки в хранилище.
type TrainingRepository interface {
	// ListScenariosByModule возвращает сценарии модуля без правильного ответа.
	ListScenariosByModule(ctx context.Context, moduleID int) ([]models.TrainingScenario, error)
	// GetScenario возвращает сценарий с правильным ответом.
	GetScenario(ctx context.Context, scenarioID int) (*models.Scenario, error)
	// SaveAttempt сохраняет попытку и возвращает её ID.
	SaveAttempt(ctx context.Context, attempt models.Attempt) (int, error)
}

// TrainingService реализует прохождение сценариев.
type TrainingService struct {
	repo TrainingRepository
	log  *slog.Logger
}

// NewTrainingService создает новый экземпляр TrainingService.
func NewTrainingService(repo TrainingRepository, log *slog.Logger) *TrainingService {
	return &TrainingService{
		repo: repo,
		log:  log,
	}
}

// ListScenarios возвращает сценарии модуля. Правильный ответ никогда
// не покидает сервер.
func (s *TrainingService) ListScenarios(ctx context.Context, moduleID int) ([]models.TrainingScenario, error) {
	return s.repo.ListScenariosByModule(ctx, moduleID)
}

// RecordAttempt сравнивает ответ пользователя с правильным, сохраняет
// попытку и возвращает признак корректности.
func (s *TrainingService) RecordAttempt(ctx context.Context, userUID string, scenarioID, choice int) (bool, error) {
	scenario, err := s.repo.GetScenario(ctx, scenarioID)
	if err != nil {
		return false, err
	}

	correct := choice == scenario.CorrectChoice
	_, err = s.repo.SaveAttempt(ctx, models.Attempt{
		UserUID:    userUID,
		ScenarioID: scenarioID,
		Choice:     choice,
		IsCorrect:  correct,
	})
	if err != nil {
		return false, err
	}

	s.log.Info("attempt recorded",
		slog.String("user_uid", userUID),
		slog.Int("scenario_id", scenarioID),
		slog.Bool("correct", correct))
	return correct, nil
}
