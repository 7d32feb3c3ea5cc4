// Package checkout implements checkout link authoring and the checkout
// resolver that decides which payment methods a customer can use.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"linkpay/internal/models"
	"linkpay/internal/services/scope"
	"linkpay/internal/validation"
)

// CreateLinkInput describes a new checkout link.
type CreateLinkInput struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	PricingMode string   `json:"pricing_mode"`
	Amount      float64  `json:"amount"`
	MinAmount   float64  `json:"min_amount"`
	MaxAmount   float64  `json:"max_amount"`
	Countries   []string `json:"countries"`
}

// UpdateLinkInput carries the mutable fields. The slug and the currency are
// immutable after creation.
type UpdateLinkInput struct {
	Title       string   `json:"title"`
	PricingMode string   `json:"pricing_mode"`
	Amount      float64  `json:"amount"`
	MinAmount   float64  `json:"min_amount"`
	MaxAmount   float64  `json:"max_amount"`
	Countries   []string `json:"countries"`
	Status      string   `json:"status"`
}

type Service interface {
	Create(ctx context.Context, claims *models.UserClaims, in CreateLinkInput) (*models.CheckoutLink, error)
	Update(ctx context.Context, claims *models.UserClaims, id uint, in UpdateLinkInput) (*models.CheckoutLink, error)
	Delete(ctx context.Context, claims *models.UserClaims, id uint) error
	Get(ctx context.Context, claims *models.UserClaims, id uint) (*models.CheckoutLink, error)
	List(ctx context.Context, claims *models.UserClaims) ([]models.CheckoutLink, error)
	// GetPublic loads an active link by slug for the customer-facing page.
	GetPublic(ctx context.Context, slug string) (*models.CheckoutLink, error)
}

type service struct {
	repo      LinkRepository
	countries CountrySource
	resolver  *Resolver
	cache     ResolutionCache
}

func NewService(repo LinkRepository, countries CountrySource, resolver *Resolver, cache ResolutionCache) Service {
	if repo == nil {
		panic("repo is required")
	}
	if countries == nil {
		panic("country source is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	return &service{repo: repo, countries: countries, resolver: resolver, cache: cache}
}

func (s *service) Create(ctx context.Context, claims *models.UserClaims, in CreateLinkInput) (*models.CheckoutLink, error) {
	link := &models.CheckoutLink{
		OwnerID:     claims.UserID,
		Slug:        strings.ToLower(strings.TrimSpace(in.Slug)),
		Title:       in.Title,
		PricingMode: in.PricingMode,
		Amount:      in.Amount,
		MinAmount:   in.MinAmount,
		MaxAmount:   in.MaxAmount,
		Countries:   in.Countries,
		Status:      models.LinkStatusActive,
	}

	if err := s.validate(link); err != nil {
		return nil, err
	}

	taken, err := s.repo.SlugTaken(link.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, ErrSlugTaken
	}

	if err := s.checkCoverage(link.OwnerID, link.Countries); err != nil {
		return nil, err
	}
	if err := s.checkCatalog(link.OwnerID, link.Countries); err != nil {
		return nil, err
	}

	// The charge currency is pinned at creation from the first selected
	// country's mapping; it never changes afterwards.
	first, err := s.countries.GetCountry(link.OwnerID, link.Countries[0])
	if err != nil {
		return nil, fmt.Errorf("%w: unknown country %q", ErrConfigurationInvalid, link.Countries[0])
	}
	link.CurrencyCode = first.CurrencyCode

	if err := s.repo.Create(link); err != nil {
		return nil, fmt.Errorf("failed to create checkout link: %w", err)
	}
	return link, nil
}

func (s *service) Update(ctx context.Context, claims *models.UserClaims, id uint, in UpdateLinkInput) (*models.CheckoutLink, error) {
	link, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrLinkNotFound
	}
	if !scope.For(claims).CanAccess(link.OwnerID) {
		return nil, scope.ErrForbidden
	}

	link.Title = in.Title
	link.PricingMode = in.PricingMode
	link.Amount = in.Amount
	link.MinAmount = in.MinAmount
	link.MaxAmount = in.MaxAmount
	link.Countries = in.Countries
	if in.Status != "" {
		link.Status = in.Status
	}

	if err := s.validate(link); err != nil {
		return nil, err
	}
	if err := s.checkCoverage(link.OwnerID, link.Countries); err != nil {
		return nil, err
	}
	if err := s.checkCatalog(link.OwnerID, link.Countries); err != nil {
		return nil, err
	}

	if err := s.repo.Update(link); err != nil {
		return nil, fmt.Errorf("failed to update checkout link: %w", err)
	}
	s.invalidateResolutions(ctx, link.OwnerID)
	return link, nil
}

func (s *service) Delete(ctx context.Context, claims *models.UserClaims, id uint) error {
	link, err := s.repo.GetByID(id)
	if err != nil {
		return ErrLinkNotFound
	}
	if !scope.For(claims).CanAccess(link.OwnerID) {
		return scope.ErrForbidden
	}

	has, err := s.repo.HasPayments(link.ID)
	if err != nil {
		return fmt.Errorf("failed to check link payments: %w", err)
	}
	if has {
		return ErrLinkInUse
	}

	if err := s.repo.Delete(link); err != nil {
		return fmt.Errorf("failed to delete checkout link: %w", err)
	}
	s.invalidateResolutions(ctx, link.OwnerID)
	return nil
}

func (s *service) Get(_ context.Context, claims *models.UserClaims, id uint) (*models.CheckoutLink, error) {
	link, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrLinkNotFound
	}
	if !scope.For(claims).CanAccess(link.OwnerID) {
		return nil, scope.ErrForbidden
	}
	return link, nil
}

func (s *service) List(_ context.Context, claims *models.UserClaims) ([]models.CheckoutLink, error) {
	return s.repo.List(scope.For(claims))
}

func (s *service) GetPublic(_ context.Context, slug string) (*models.CheckoutLink, error) {
	link, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, ErrLinkNotFound
	}
	if link.Status != models.LinkStatusActive {
		return nil, ErrLinkInactive
	}
	return link, nil
}

func (s *service) validate(link *models.CheckoutLink) error {
	v := validation.New()
	v.CheckoutLink(link)
	if !v.Valid() {
		return fmt.Errorf("%w: %s", ErrConfigurationInvalid, v.Error())
	}
	return nil
}

// checkCoverage rejects countries the merchant has no active method for.
func (s *service) checkCoverage(ownerID uint, codes []string) error {
	uncovered, err := s.resolver.UncoveredCountries(ownerID, codes)
	if err != nil {
		return fmt.Errorf("failed to check method coverage: %w", err)
	}
	if len(uncovered) > 0 {
		return fmt.Errorf("%w: no active payment method covers %s",
			ErrConfigurationInvalid, strings.Join(uncovered, ", "))
	}
	return nil
}

// checkCatalog verifies every code resolves in the merchant's catalog view.
// A covered-but-unknown code (e.g. a typo matched by a "Global" method)
// must not become an active link country.
func (s *service) checkCatalog(ownerID uint, codes []string) error {
	for _, code := range codes {
		if _, err := s.countries.GetCountry(ownerID, code); err != nil {
			return fmt.Errorf("%w: unknown country %q", ErrConfigurationInvalid, code)
		}
	}
	return nil
}

func (s *service) invalidateResolutions(ctx context.Context, ownerID uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeleteByPrefix(ctx, ResolutionKeyPrefix(ownerID))
}
