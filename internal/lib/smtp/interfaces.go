// Package smtp — транспорт писем-квитанций через внешний SMTP-сервер.
package smtp

import "io"

// Client — минимальный набор операций SMTP-сессии, нужный для отправки
// квитанции. Выделен в интерфейс, чтобы подменять сессию в тестах.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface — фабрика SMTP-сессий для сервиса квитанций.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
