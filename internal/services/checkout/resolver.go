package checkout

import (
	"context"
	"fmt"
	"time"

	"linkpay/internal/models"
)

// DefaultResolutionTTL bounds staleness of cached resolutions. Method
// authoring changes are rare next to checkout reads, so a short TTL is
// enough.
const DefaultResolutionTTL = 30 * time.Second

// Resolution is the outcome of resolving a checkout link for a country: the
// currency to display and the eligible methods in the merchant's authored
// order.
type Resolution struct {
	CurrencyCode string                 `json:"currency"`
	Methods      []models.PaymentMethod `json:"methods"`
}

// Resolver computes which payment methods a customer in a given country can
// use on a checkout link. It is a pure read; the same logic backs both
// checkout rendering and authoring-time coverage checks.
type Resolver struct {
	methods MethodLister
	cache   ResolutionCache
	ttl     time.Duration
}

func NewResolver(methods MethodLister, cache ResolutionCache, ttl time.Duration) *Resolver {
	if methods == nil {
		panic("methods lister is required")
	}
	if ttl <= 0 {
		ttl = DefaultResolutionTTL
	}
	return &Resolver{methods: methods, cache: cache, ttl: ttl}
}

// Resolve returns the eligible methods and display currency for a customer
// in countryCode, or an error when the checkout must not render as payable.
func (r *Resolver) Resolve(ctx context.Context, link *models.CheckoutLink, countryCode string) (*Resolution, error) {
	if link.Status != models.LinkStatusActive {
		return nil, ErrLinkInactive
	}
	if !link.Countries.Contains(countryCode) {
		return nil, ErrCountryNotSupported
	}

	key := resolutionKey(link.OwnerID, link.ID, countryCode)
	if r.cache != nil {
		var cached Resolution
		if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	eligible, err := r.eligibleMethods(link.OwnerID, countryCode)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, ErrNoPaymentMethodAvailable
	}

	res := &Resolution{CurrencyCode: link.CurrencyCode, Methods: eligible}
	if r.cache != nil {
		_ = r.cache.SetWithTTL(ctx, key, res, r.ttl)
	}
	return res, nil
}

// UncoveredCountries returns the codes from the candidate set for which the
// owner has no active method. Used at authoring time: a country may only be
// activated on a link when it is covered.
func (r *Resolver) UncoveredCountries(ownerID uint, codes []string) ([]string, error) {
	methods, err := r.methods.ListByOwner(ownerID, true)
	if err != nil {
		return nil, err
	}

	var uncovered []string
	for _, code := range codes {
		covered := false
		for i := range methods {
			if methods[i].Covers(code) {
				covered = true
				break
			}
		}
		if !covered {
			uncovered = append(uncovered, code)
		}
	}
	return uncovered, nil
}

func (r *Resolver) eligibleMethods(ownerID uint, countryCode string) ([]models.PaymentMethod, error) {
	methods, err := r.methods.ListByOwner(ownerID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	eligible := make([]models.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		if m.Covers(countryCode) {
			eligible = append(eligible, m)
		}
	}
	return eligible, nil
}

// ResolutionKeyPrefix is the cache namespace for one merchant's resolutions;
// method and link authoring invalidate by this prefix.
func ResolutionKeyPrefix(ownerID uint) string {
	return fmt.Sprintf("resolve:owner:%d", ownerID)
}

func resolutionKey(ownerID, linkID uint, countryCode string) string {
	return fmt.Sprintf("%s:link:%d:%s", ResolutionKeyPrefix(ownerID), linkID, countryCode)
}
