// Package ollama реализует клиент внешнего сервиса генерации текста.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Client ходит в HTTP API Ollama с ограниченным таймаутом.
type Client struct {
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewClient создаёт новый клиент для адреса apiURL и модели model.
func NewClient(apiURL, model string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Model возвращает имя настроенной модели.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Generate отправляет системный промпт и вопрос, возвращает сгенерированный текст.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/generate", GenerateRequest{
		Model:  c.model,
		System: system,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("unexpected status: " + resp.Status)
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", err
	}
	return genResp.Response, nil
}

// Tags возвращает список локально доступных моделей.
func (c *Client) Tags(ctx context.Context) (*TagsResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var tagsResp TagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return nil, err
	}
	return &tagsResp, nil
}

// ListModelNames возвращает имена локально доступных моделей.
func (c *Client) ListModelNames(ctx context.Context) ([]string, error) {
	tags, err := c.Tags(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
