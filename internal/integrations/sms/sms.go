// Package sms выбирает способ доставки SMS по настройкам
package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/config"
	"github.com/m04kA/SMC-PetCareService/internal/integrations/twilio"
)

// Sender отправка SMS
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LogSender пишет сообщения в лог вместо отправки
type LogSender struct {
	log Logger
}

// NewLogSender создает отправитель, который только логирует
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.log.Info("SMS to=%s: %s", to, body)
	return nil
}

// NoopSender молча отбрасывает сообщения
type NoopSender struct{}

func (NoopSender) Send(context.Context, string, string) error { return nil }

// New создает отправителя по notifications.provider
func New(cfg config.NotificationsConfig, log Logger) (Sender, error) {
	switch cfg.Provider {
	case "twilio":
		if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
			return nil, fmt.Errorf("sms: twilio requires account_sid, auth_token and from_number")
		}
		return twilio.NewClient(cfg.BaseURL, cfg.AccountSID, cfg.AuthToken, cfg.FromNumber,
			time.Duration(cfg.Timeout)*time.Second, log), nil
	case "log":
		return NewLogSender(log), nil
	case "noop", "":
		return NoopSender{}, nil
	default:
		return nil, fmt.Errorf("sms: unknown provider %q", cfg.Provider)
	}
}
