package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/magabrotheeeer/phishguard/internal/config"
	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
)

// Transport открывает аутентифицированные STARTTLS-сессии к SMTP-серверу,
// через который уходят письма-квитанции о покупках.
type Transport struct {
	smtp config.SMTP
	log  *slog.Logger
}

// smtpClientWrapper адаптирует *smtp.Client к интерфейсу Client.
type smtpClientWrapper struct {
	client *smtp.Client
}

func (w *smtpClientWrapper) Mail(from string) error {
	return w.client.Mail(from)
}

func (w *smtpClientWrapper) Rcpt(to string) error {
	return w.client.Rcpt(to)
}

func (w *smtpClientWrapper) Data() (io.WriteCloser, error) {
	return w.client.Data()
}

func (w *smtpClientWrapper) Quit() error {
	return w.client.Quit()
}

func (w *smtpClientWrapper) Close() error {
	return w.client.Close()
}

// NewTransport создает Transport для SMTP-секции конфига.
func NewTransport(smtpCfg config.SMTP, log *slog.Logger) *Transport {
	return &Transport{smtp: smtpCfg, log: log}
}

// Connect устанавливает соединение и возвращает готовый к отправке клиент.
// Сервер обязан поддерживать STARTTLS: квитанции содержат email покупателя
// и открытым текстом не отправляются.
func (t *Transport) Connect() (Client, error) {
	addr := t.smtp.SMTPHost + ":" + t.smtp.SMTPPort

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.log.Error("failed to dial SMTP server", sl.Err(err))
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, t.smtp.SMTPHost)
	if err != nil {
		t.log.Error("failed to create SMTP client", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			t.log.Error("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		t.log.Error("SMTP server does not support STARTTLS")
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp server does not support STARTTLS")
	}
	tlsConfig := &tls.Config{
		ServerName: t.smtp.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		t.log.Error("failed to start TLS", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", t.smtp.SMTPUser, t.smtp.SMTPPass, t.smtp.SMTPHost)
	if err = client.Auth(auth); err != nil {
		t.log.Error("smtp auth failed", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp auth failed: %w", err)
	}

	return &smtpClientWrapper{client: client}, nil
}

// GetSMTPUser возвращает адрес отправителя квитанций.
func (t *Transport) GetSMTPUser() string {
	return t.smtp.SMTPUser
}
