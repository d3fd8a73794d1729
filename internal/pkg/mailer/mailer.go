package mailer

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/piresc/estamp/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_mailer.go -package=mocks github.com/piresc/estamp/internal/pkg/mailer Mailer

// Mailer delivers transactional email
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single outbound email
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// New selects a Mailer from configuration. Unknown providers fall back to logging.
func New(cfg models.MailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "resend":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("MAIL_API_KEY is required for the resend provider")
		}
		return NewResendMailer(cfg.APIKey, cfg.Sender), nil
	default:
		return NewLogMailer(), nil
	}
}

// SignupOTP builds the email carrying a signup verification code
func SignupOTP(to, name, code string, ttl time.Duration) Message {
	return Message{
		To:      to,
		Subject: "Your OTP Code",
		HTML: fmt.Sprintf("<p>Hello %s,</p>\n<p>Your OTP is: <b>%s</b></p>\n<p>It expires in %s.</p>",
			html.EscapeString(name), code, humanize(ttl)),
		Text: fmt.Sprintf("Hello %s,\nYour OTP is: %s\nIt expires in %s.", name, code, humanize(ttl)),
	}
}

// ResetOTP builds the email carrying a password reset code
func ResetOTP(to, name, code string, ttl time.Duration) Message {
	return Message{
		To:      to,
		Subject: "Reset Your Password",
		HTML: fmt.Sprintf("<p>Hello %s,</p>\n<p>Your password reset OTP is: <b>%s</b></p>\n<p>This OTP is valid for %s.</p>",
			html.EscapeString(name), code, humanize(ttl)),
		Text: fmt.Sprintf("Hello %s,\nYour password reset OTP is: %s\nThis OTP is valid for %s.", name, code, humanize(ttl)),
	}
}

func humanize(d time.Duration) string {
	if d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}
