package checkout

import (
	"context"
	"time"

	"linkpay/internal/models"
	"linkpay/internal/services/scope"
)

// MethodLister supplies a merchant's payment methods in authored order.
type MethodLister interface {
	ListByOwner(ownerID uint, onlyActive bool) ([]models.PaymentMethod, error)
}

// LinkRepository is the persistence surface for checkout links.
type LinkRepository interface {
	Create(link *models.CheckoutLink) error
	Update(link *models.CheckoutLink) error
	Delete(link *models.CheckoutLink) error
	GetByID(id uint) (*models.CheckoutLink, error)
	GetBySlug(slug string) (*models.CheckoutLink, error)
	List(sc scope.Scope) ([]models.CheckoutLink, error)
	SlugTaken(slug string) (bool, error)
	HasPayments(linkID uint) (bool, error)
}

// CountrySource resolves a country code for a merchant, preferring the
// merchant's own catalog row over the global one.
type CountrySource interface {
	GetCountry(ownerID uint, code string) (*models.Country, error)
}

// ResolutionCache holds resolved (link, country) method lists for a short
// TTL. Resolution stays correct without it; it only absorbs checkout read
// traffic.
type ResolutionCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}
