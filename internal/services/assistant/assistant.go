// Package services реализует чат-помощник по фишингу поверх внешнего
// сервиса генерации текста с деградацией до заготовленных ответов.
package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
)

// systemPrompt — фиксированный системный промпт помощника.
const systemPrompt = "You are a phishing-awareness tutor. Answer briefly and practically. " +
	"Explain red flags in suspicious emails, SMS and websites, never ask the user for credentials, " +
	"and always recommend verifying through official channels."

// Generator описывает контракт внешнего генератора текста.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
	ListModelNames(ctx context.Context) ([]string, error)
	Model() string
}

// Status — готовность внешнего генератора.
type Status struct {
	Ready bool   `json:"ready"`
	Model string `json:"model"`
	Hint  string `json:"hint,omitempty"`
}

// Answer — ответ помощника с указанием источника.
type Answer struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
}

// AssistantService отвечает на вопросы пользователей о фишинге.
type AssistantService struct {
	generator Generator
	log       *slog.Logger
}

// NewAssistantService создает новый экземпляр AssistantService.
func NewAssistantService(generator Generator, log *slog.Logger) *AssistantService {
	return &AssistantService{
		generator: generator,
		log:       log,
	}
}

// Ask отправляет вопрос генератору. При любой ошибке внешнего вызова
// возвращается заготовленный ответ: доступность здесь важнее точности.
func (s *AssistantService) Ask(ctx context.Context, question string) Answer {
	text, err := s.generator.Generate(ctx, systemPrompt, question)
	if err != nil {
		s.log.Warn("text generation failed, using canned answer", sl.Err(err))
		return Answer{Answer: cannedAnswer(question), Source: "fallback"}
	}
	return Answer{Answer: strings.TrimSpace(text), Source: "ollama"}
}

// CheckStatus проверяет, запущен ли внешний сервис и загружена ли модель.
func (s *AssistantService) CheckStatus(ctx context.Context) Status {
	model := s.generator.Model()
	names, err := s.generator.ListModelNames(ctx)
	if err != nil {
		return Status{
			Ready: false,
			Model: model,
			Hint:  "text generation backend is not reachable: install ollama, run `ollama serve` and `ollama pull " + model + "`",
		}
	}
	for _, name := range names {
		if name == model || strings.HasPrefix(name, model+":") {
			return Status{Ready: true, Model: model}
		}
	}
	return Status{
		Ready: false,
		Model: model,
		Hint:  "model is not pulled yet: run `ollama pull " + model + "`",
	}
}

// cannedAnswer подбирает заготовленный совет по ключевым словам вопроса.
func cannedAnswer(question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "phish"):
		return "Phishing messages push you to act fast: check the sender address, hover over links before clicking, " +
			"and never enter credentials on a page you reached from a message."
	case strings.Contains(q, "bank") || strings.Contains(q, "password"):
		return "Your bank never asks for your full password, PIN or card number in a message. " +
			"When in doubt, call the number printed on your card, not one from the message."
	case strings.Contains(q, "otp") || strings.Contains(q, "code"):
		return "One-time codes are only for you. No support agent, courier or bank employee ever needs your OTP — " +
			"anyone asking for it is a scammer."
	}
	return "Be suspicious of urgency, check sender addresses and links carefully, " +
		"and verify requests through an official channel before acting."
}
