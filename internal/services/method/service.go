// Package method implements the payment method registry: merchant-owned
// definitions of how a customer can pay, either manual instructions or an
// external redirect link.
package method

import (
	"context"
	"fmt"

	"linkpay/internal/models"
	"linkpay/internal/services/checkout"
	"linkpay/internal/services/scope"
	"linkpay/internal/validation"
)

// CreateInput describes a new payment method. Exactly one payload applies:
// Fields for manual methods, LinkURL for redirect methods. The irrelevant
// one is discarded, never stored.
type CreateInput struct {
	Name      string               `json:"name"`
	Kind      string               `json:"kind"`
	Countries []string             `json:"countries"`
	Status    string               `json:"status"`
	Fields    []models.CustomField `json:"fields"`
	LinkURL   string               `json:"link_url"`
}

// UpdateInput mirrors CreateInput; the kind itself is immutable.
type UpdateInput struct {
	Name      string               `json:"name"`
	Countries []string             `json:"countries"`
	Status    string               `json:"status"`
	Fields    []models.CustomField `json:"fields"`
	LinkURL   string               `json:"link_url"`
}

type Service interface {
	Create(ctx context.Context, claims *models.UserClaims, in CreateInput) (*models.PaymentMethod, error)
	Update(ctx context.Context, claims *models.UserClaims, id uint, in UpdateInput) (*models.PaymentMethod, error)
	Get(ctx context.Context, claims *models.UserClaims, id uint) (*models.PaymentMethod, error)
	List(ctx context.Context, claims *models.UserClaims) ([]models.PaymentMethod, error)
}

type service struct {
	repo  Repository
	cache CacheInvalidator
}

func NewService(repo Repository, cache CacheInvalidator) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) Create(ctx context.Context, claims *models.UserClaims, in CreateInput) (*models.PaymentMethod, error) {
	m := &models.PaymentMethod{
		OwnerID:   claims.UserID,
		Name:      in.Name,
		Kind:      in.Kind,
		Countries: in.Countries,
		Status:    in.Status,
	}
	if m.Status == "" {
		m.Status = models.MethodStatusPending
	}
	// Tagged construction: only the payload matching the kind survives.
	switch in.Kind {
	case models.MethodKindManual:
		m.Fields = in.Fields
	case models.MethodKindRedirect:
		m.LinkURL = in.LinkURL
	}

	if err := s.validate(ctx, m, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}
	s.invalidateResolutions(ctx, m.OwnerID)
	return m, nil
}

func (s *service) Update(ctx context.Context, claims *models.UserClaims, id uint, in UpdateInput) (*models.PaymentMethod, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrMethodNotFound
	}
	if !scope.For(claims).CanAccess(m.OwnerID) {
		return nil, scope.ErrForbidden
	}

	m.Name = in.Name
	m.Countries = in.Countries
	if in.Status != "" {
		m.Status = in.Status
	}
	switch m.Kind {
	case models.MethodKindManual:
		m.Fields = in.Fields
		m.LinkURL = ""
	case models.MethodKindRedirect:
		m.LinkURL = in.LinkURL
		m.Fields = nil
	}

	if err := s.validate(ctx, m, m.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(m); err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}
	s.invalidateResolutions(ctx, m.OwnerID)
	return m, nil
}

func (s *service) Get(ctx context.Context, claims *models.UserClaims, id uint) (*models.PaymentMethod, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrMethodNotFound
	}
	if !scope.For(claims).CanAccess(m.OwnerID) {
		return nil, scope.ErrForbidden
	}
	return m, nil
}

func (s *service) List(_ context.Context, claims *models.UserClaims) ([]models.PaymentMethod, error) {
	return s.repo.List(scope.For(claims))
}

func (s *service) validate(_ context.Context, m *models.PaymentMethod, excludeID uint) error {
	v := validation.New()
	v.PaymentMethod(m)
	if !v.Valid() {
		return fmt.Errorf("%w: %s", ErrConfigurationInvalid, v.Error())
	}

	taken, err := s.repo.NameTaken(m.OwnerID, m.Name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check method name: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: name already in use", ErrConfigurationInvalid)
	}
	return nil
}

func (s *service) invalidateResolutions(ctx context.Context, ownerID uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeleteByPrefix(ctx, checkout.ResolutionKeyPrefix(ownerID))
}
