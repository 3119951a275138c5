package ollama

// GenerateRequest — тело запроса POST /api/generate.
type GenerateRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// GenerateResponse — ответ /api/generate при stream=false.
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// TagsResponse — ответ GET /api/tags со списком локальных моделей.
type TagsResponse struct {
	Models []ModelInfo `json:"models"`
}

// ModelInfo — одна локальная модель.
type ModelInfo struct {
	Name string `json:"name"`
}
