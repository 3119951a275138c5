// Package services реализует отправку писем-квитанций о покупках.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/phishguard/internal/lib/sl"
	"github.com/magabrotheeeer/phishguard/internal/lib/smtp"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// SenderService отправляет квитанции покупателям.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendPurchaseReceipt разбирает событие покупки и отправляет квитанцию.
func (s *SenderService) SendPurchaseReceipt(body []byte) error {
	var receipt models.PurchaseReceipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		s.log.Error("failed to unmarshal receipt", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{receipt.Email}
	subject := "PhishGuard: purchase receipt"
	bodyText := fmt.Sprintf("You purchased the training module %q for %d credits.\nRemaining balance: %d credits.\n\nHappy training and stay safe!",
		receipt.ModuleTitle, receipt.Price, receipt.Credits)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			s.log.Warn("failed to quit SMTP session", sl.Err(quitErr))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	s.log.Info("purchase receipt sent", slog.String("to", strings.Join(to, ";")))
	return nil
}
