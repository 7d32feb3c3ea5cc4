package payment

import (
	"context"

	"linkpay/internal/models"
	"linkpay/internal/services/checkout"
	"linkpay/internal/services/scope"
)

// Repository is the persistence surface the service needs. Status changes go
// exclusively through TransitionStatus.
type Repository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByPublicID(publicID string) (*models.Payment, error)
	List(sc scope.Scope, limit, offset int) ([]models.Payment, int64, error)
	TransitionStatus(ctx context.Context, id uint, from, to string, patch map[string]interface{}) (bool, error)
}

// Notifier fans a committed transition out to its audiences. Failures are
// logged by the caller, never propagated to the transition itself.
type Notifier interface {
	PaymentTransitioned(ctx context.Context, p *models.Payment, from, to string) error
}

// CheckoutResolver validates a customer's method choice at submission time.
type CheckoutResolver interface {
	Resolve(ctx context.Context, link *models.CheckoutLink, countryCode string) (*checkout.Resolution, error)
}

// MetricsCollector records transition outcomes.
type MetricsCollector interface {
	RecordTransition(from, to, result string)
}
