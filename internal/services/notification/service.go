// Package notification fans committed payment state transitions out to
// their audiences: in-app rows for merchants and super-admins, email for
// customers. Everything here is best-effort by design; the payment status
// is the source of truth and a fan-out failure never rolls it back.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkpay/internal/models"
	"linkpay/internal/services/email"

	"go.uber.org/zap"
)

type Service struct {
	store  Store
	users  UserDirectory
	mailer email.Mailer
	logger *zap.Logger
}

func NewService(store Store, users UserDirectory, mailer email.Mailer, logger *zap.Logger) *Service {
	if store == nil {
		panic("store is required")
	}
	if users == nil {
		panic("user directory is required")
	}
	if mailer == nil {
		panic("mailer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, users: users, mailer: mailer, logger: logger}
}

// PaymentTransitioned creates notification rows synchronously and requests
// email delivery asynchronously. The returned error aggregates row-creation
// failures for the operator log; emails are fire-and-forget.
func (s *Service) PaymentTransitioned(ctx context.Context, p *models.Payment, from, to string) error {
	switch to {
	case models.PaymentStatusPendingVerification:
		err := s.store.Create(&models.Notification{
			UserID:  p.OwnerID,
			Title:   "New proof of payment to verify",
			Message: fmt.Sprintf("%s submitted proof for %.2f %s.", p.CustomerEmail, p.Amount, p.CurrencyCode),
			Type:    models.NotificationTypeProofSubmitted,
			Payload: models.JSON{"payment_id": p.ID, "public_id": p.PublicID},
		})
		s.sendAsync(email.Message{
			Recipients: []string{p.CustomerEmail},
			Subject:    "We received your payment proof",
			Text: fmt.Sprintf("Your proof for the payment of %.2f %s was received and is awaiting review.",
				p.Amount, p.CurrencyCode),
		})
		return err

	case models.PaymentStatusCompleted:
		s.sendAsync(email.Message{
			Recipients: []string{p.CustomerEmail},
			Subject:    "Your payment was verified",
			Text:       fmt.Sprintf("Your payment of %.2f %s has been verified.", p.Amount, p.CurrencyCode),
		})
		return s.auditRows(p, from, to)

	case models.PaymentStatusFailed:
		s.sendAsync(email.Message{
			Recipients: []string{p.CustomerEmail},
			Subject:    "Your payment could not be verified",
			Text:       fmt.Sprintf("Your payment of %.2f %s was rejected. %s", p.Amount, p.CurrencyCode, p.ReviewNotes),
		})
		return s.auditRows(p, from, to)

	case models.PaymentStatusRefunded:
		s.sendAsync(email.Message{
			Recipients: []string{p.CustomerEmail},
			Subject:    "Your payment was refunded",
			Text:       fmt.Sprintf("Your payment of %.2f %s has been marked refunded.", p.Amount, p.CurrencyCode),
		})
		return nil
	}
	return nil
}

// List returns the caller's own notifications.
func (s *Service) List(_ context.Context, claims *models.UserClaims, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListForUser(claims.UserID, limit, offset)
}

// MarkRead flips the read flag; only the recipient may do so.
func (s *Service) MarkRead(_ context.Context, claims *models.UserClaims, id uint) error {
	ok, err := s.store.MarkRead(id, claims.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *Service) UnreadCount(_ context.Context, claims *models.UserClaims) (int64, error) {
	return s.store.CountUnread(claims.UserID)
}

// auditRows records the review outcome for every super-admin.
func (s *Service) auditRows(p *models.Payment, from, to string) error {
	admins, err := s.users.ListSuperAdmins()
	if err != nil {
		return fmt.Errorf("failed to list super admins: %w", err)
	}

	var errs []error
	for _, admin := range admins {
		err := s.store.Create(&models.Notification{
			UserID:  admin.ID,
			Title:   "Payment reviewed",
			Message: fmt.Sprintf("Payment %s moved from %s to %s.", p.PublicID, from, to),
			Type:    models.NotificationTypePaymentAudit,
			Payload: models.JSON{"payment_id": p.ID, "public_id": p.PublicID, "from": from, "to": to},
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// sendAsync hands the message to the mailer without blocking the request.
// Delivery failures are logged, not retried; retry policy belongs to the
// delivery collaborator.
func (s *Service) sendAsync(msg email.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Error("email dispatch failed",
				zap.Strings("recipients", msg.Recipients),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	}()
}
