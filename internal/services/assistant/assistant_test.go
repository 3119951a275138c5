package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type GeneratorMock struct{ mock.Mock }

func (m *GeneratorMock) Generate(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}
func (m *GeneratorMock) ListModelNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *GeneratorMock) Model() string {
	return m.Called().String(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAssistantService_Ask(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		setupMocks func(g *GeneratorMock)
		wantSource string
		wantPart   string
	}{
		{
			name:     "генератор доступен",
			question: "How do I spot a fake email?",
			setupMocks: func(g *GeneratorMock) {
				g.On("Generate", mock.Anything, mock.Anything, "How do I spot a fake email?").
					Return("  Check the sender domain.  ", nil)
			},
			wantSource: "ollama",
			wantPart:   "Check the sender domain.",
		},
		{
			name:     "генератор недоступен, подбирается совет про фишинг",
			question: "What is phishing?",
			setupMocks: func(g *GeneratorMock) {
				g.On("Generate", mock.Anything, mock.Anything, "What is phishing?").
					Return("", errors.New("connection refused"))
			},
			wantSource: "fallback",
			wantPart:   "push you to act fast",
		},
		{
			name:     "вопрос про одноразовый код",
			question: "Someone asked for my OTP code",
			setupMocks: func(g *GeneratorMock) {
				g.On("Generate", mock.Anything, mock.Anything, mock.Anything).
					Return("", errors.New("connection refused"))
			},
			wantSource: "fallback",
			wantPart:   "One-time codes",
		},
		{
			name:     "общий совет по умолчанию",
			question: "help me",
			setupMocks: func(g *GeneratorMock) {
				g.On("Generate", mock.Anything, mock.Anything, mock.Anything).
					Return("", errors.New("connection refused"))
			},
			wantSource: "fallback",
			wantPart:   "official channel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(GeneratorMock)
			tt.setupMocks(gen)

			svc := NewAssistantService(gen, newNoopLogger())
			answer := svc.Ask(context.Background(), tt.question)

			assert.Equal(t, tt.wantSource, answer.Source)
			assert.True(t, strings.Contains(answer.Answer, tt.wantPart),
				"answer should contain %q, got %q", tt.wantPart, answer.Answer)
			gen.AssertExpectations(t)
		})
	}
}

func TestAssistantService_CheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(g *GeneratorMock)
		wantReady  bool
		wantHint   string
	}{
		{
			name: "модель загружена",
			setupMocks: func(g *GeneratorMock) {
				g.On("Model").Return("llama3")
				g.On("ListModelNames", mock.Anything).Return([]string{"llama3:latest"}, nil)
			},
			wantReady: true,
		},
		{
			name: "сервис недоступен",
			setupMocks: func(g *GeneratorMock) {
				g.On("Model").Return("llama3")
				g.On("ListModelNames", mock.Anything).Return(nil, errors.New("connection refused"))
			},
			wantReady: false,
			wantHint:  "ollama serve",
		},
		{
			name: "модель не загружена",
			setupMocks: func(g *GeneratorMock) {
				g.On("Model").Return("llama3")
				g.On("ListModelNames", mock.Anything).Return([]string{"mistral:latest"}, nil)
			},
			wantReady: false,
			wantHint:  "ollama pull llama3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(GeneratorMock)
			tt.setupMocks(gen)

			svc := NewAssistantService(gen, newNoopLogger())
			st := svc.CheckStatus(context.Background())

			assert.Equal(t, tt.wantReady, st.Ready)
			assert.Equal(t, "llama3", st.Model)
			if tt.wantHint != "" {
				assert.Contains(t, st.Hint, tt.wantHint)
			} else {
				assert.Empty(t, st.Hint)
			}
			gen.AssertExpectations(t)
		})
	}
}
