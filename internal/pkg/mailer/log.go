package mailer

import (
	"context"

	"github.com/piresc/estamp/internal/pkg/logger"
)

// LogMailer writes messages to the log instead of delivering them. It is
// meant for local development, where the OTP has to be read from the log.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	logger.Info("Email (not delivered)",
		logger.String("to", msg.To),
		logger.String("subject", msg.Subject),
		logger.String("body", msg.Text))
	return nil
}
