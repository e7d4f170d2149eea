package email

import (
	"context"

	"food-delivery-backend/internal/logger"

	"go.uber.org/zap"
)

// ConsoleTransport logs the message instead of delivering it. Used in development
// and whenever no SMTP account is configured.
type ConsoleTransport struct{}

func NewConsoleTransport() *ConsoleTransport {
	return &ConsoleTransport{}
}

func (ConsoleTransport) Send(_ context.Context, msg *Message) error {
	logger.Info("Email (development mode, not delivered)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("link", msg.Link),
		zap.String("event", "email_logged"),
	)
	return nil
}
