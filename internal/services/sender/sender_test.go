package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/phishguard/internal/lib/smtp"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	return m.Called(from).Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	return m.Called(to).Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	return m.Called().Error(0)
}

func (m *MockSMTPClient) Quit() error {
	return m.Called().Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
	written []byte
}

func (m *MockSMTPWriter) Write(p []byte) (int, error) {
	m.written = append(m.written, p...)
	args := m.Called(p)
	return len(p), args.Error(0)
}

func (m *MockSMTPWriter) Close() error {
	return m.Called().Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func receiptBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.PurchaseReceipt{
		Email:       "user@example.com",
		ModuleTitle: "Email basics",
		Price:       40,
		Credits:     60,
	})
	require.NoError(t, err)
	return body
}

func TestSendPurchaseReceipt(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)

	transport.On("GetSMTPUser").Return("receipts@phishguard.io")
	transport.On("Connect").Return(client, nil)
	client.On("Mail", "receipts@phishguard.io").Return(nil)
	client.On("Rcpt", "user@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	client.On("Quit").Return(nil)
	writer.On("Write", mock.Anything).Return(nil)
	writer.On("Close").Return(nil)

	svc := NewSenderService(newNoopLogger(), transport)
	err := svc.SendPurchaseReceipt(receiptBody(t))

	require.NoError(t, err)
	assert.Contains(t, string(writer.written), "Email basics")
	assert.Contains(t, string(writer.written), "40 credits")
	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSendPurchaseReceipt_BadPayload(t *testing.T) {
	transport := new(MockTransport)

	svc := NewSenderService(newNoopLogger(), transport)
	err := svc.SendPurchaseReceipt([]byte("{not json"))

	assert.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSendPurchaseReceipt_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	transport.On("GetSMTPUser").Return("receipts@phishguard.io")
	transport.On("Connect").Return(nil, errors.New("dial tcp: connection refused"))

	svc := NewSenderService(newNoopLogger(), transport)
	err := svc.SendPurchaseReceipt(receiptBody(t))

	assert.Error(t, err)
	transport.AssertExpectations(t)
}
