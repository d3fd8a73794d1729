package mailer

import (
	"context"
	"fmt"

	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/newrelic"
	"github.com/resend/resend-go/v2"
)

// emailSender is the slice of the Resend SDK this package needs
type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendMailer sends email through the Resend API
type ResendMailer struct {
	emails emailSender
	sender string
}

// NewResendMailer creates a mailer backed by a Resend client
func NewResendMailer(apiKey, sender string) *ResendMailer {
	client := resend.NewClient(apiKey)
	return &ResendMailer{emails: client.Emails, sender: sender}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if segment := newrelic.StartSegment(ctx, "mailer.resend.send"); segment != nil {
		defer segment.End()
	}

	resp, err := m.emails.Send(&resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		logger.Error("Failed to send email",
			logger.Email("to", msg.To),
			logger.String("subject", msg.Subject),
			logger.Err(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent",
		logger.Email("to", msg.To),
		logger.String("subject", msg.Subject),
		logger.String("message_id", resp.Id))
	return nil
}
