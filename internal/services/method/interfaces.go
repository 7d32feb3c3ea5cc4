package method

import (
	"context"

	"linkpay/internal/models"
	"linkpay/internal/services/scope"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(method *models.PaymentMethod) error
	Update(method *models.PaymentMethod) error
	GetByID(id uint) (*models.PaymentMethod, error)
	List(sc scope.Scope) ([]models.PaymentMethod, error)
	NameTaken(ownerID uint, name string, excludeID uint) (bool, error)
}

// CacheInvalidator drops cached checkout resolutions when a merchant's
// method set changes.
type CacheInvalidator interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}
