package models

import "time"

// Channel — канал доставки фишингового сценария.
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelWeb   Channel = "WEB"
)

// ParseChannel проверяет, что строка является известным каналом.
func ParseChannel(s string) (Channel, bool) {
	switch Channel(s) {
	case ChannelEmail, ChannelSMS, ChannelWeb:
		return Channel(s), true
	}
	return "", false
}

// Module — покупаемый набор обучающих сценариев одного провайдера.
type Module struct {
	ID          int
	ProviderUID string
	Title       string
	Description string
	Price       int64
	CreatedAt   time.Time
}

// CatalogModule — строка публичного каталога с email провайдера.
type CatalogModule struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	ProviderEmail string `json:"provider_email"`
}

// Scenario — один фишинговый сценарий с бинарным правильным ответом.
type Scenario struct {
	ID            int
	ModuleID      int
	Channel       Channel
	Prompt        string
	CorrectChoice int
}

// TrainingScenario — сценарий в выдаче тренировки, без правильного ответа.
type TrainingScenario struct {
	ID      int     `json:"id"`
	Channel Channel `json:"channel"`
	Prompt  string  `json:"prompt"`
}

// Attempt — ответ пользователя на сценарий.
type Attempt struct {
	ID         int
	UserUID    string
	ScenarioID int
	Choice     int
	IsCorrect  bool
	CreatedAt  time.Time
}
