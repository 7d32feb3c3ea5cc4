// Package email defines the outbound email boundary. Actual delivery is an
// external concern; the core only hands messages to a Mailer and logs
// failures without retrying.
package email

import (
	"context"

	"go.uber.org/zap"
)

// Message is one transactional email.
type Message struct {
	Recipients []string
	Subject    string
	HTML       string
	Text       string
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// DevMailer logs messages instead of delivering them. Used in development
// and as the default when no delivery backend is configured.
type DevMailer struct {
	logger *zap.Logger
}

func NewDevMailer(logger *zap.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

func (m *DevMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("email (dev, not delivered)",
		zap.Strings("recipients", msg.Recipients),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
