// Package catalog manages the country/currency reference data: a shared
// global catalog maintained by super-admins plus merchant-owned overrides
// that shadow global rows with the same code.
package catalog

import (
	"context"
	"fmt"

	"linkpay/internal/models"
	"linkpay/internal/repositories"
	"linkpay/internal/services/scope"
	"linkpay/internal/validation"
)

type CountryInput struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	CurrencyCode string `json:"currency_code"`
	Status       string `json:"status"`
}

type CurrencyInput struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Status string `json:"status"`
}

type Service interface {
	ListCountries(ctx context.Context, claims *models.UserClaims) ([]models.Country, error)
	ListCurrencies(ctx context.Context, claims *models.UserClaims) ([]models.Currency, error)
	CreateCountry(ctx context.Context, claims *models.UserClaims, in CountryInput) (*models.Country, error)
	CreateCurrency(ctx context.Context, claims *models.UserClaims, in CurrencyInput) (*models.Currency, error)
	UpdateCountryStatus(ctx context.Context, claims *models.UserClaims, id uint, status string) (*models.Country, error)
}

type service struct {
	repo repositories.CatalogRepository
}

func NewService(repo repositories.CatalogRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

func (s *service) ListCountries(_ context.Context, claims *models.UserClaims) ([]models.Country, error) {
	return s.repo.ListCountries(claims.UserID)
}

func (s *service) ListCurrencies(_ context.Context, claims *models.UserClaims) ([]models.Currency, error) {
	return s.repo.ListCurrencies(claims.UserID)
}

// CreateCountry creates a global catalog row when called by a super-admin
// and a merchant-owned override otherwise.
func (s *service) CreateCountry(_ context.Context, claims *models.UserClaims, in CountryInput) (*models.Country, error) {
	v := validation.New()
	v.Required("name", in.Name)
	v.Required("code", in.Code)
	v.Required("currency_code", in.CurrencyCode)
	if in.Status != "" {
		v.OneOf("status", in.Status,
			models.CatalogStatusActive, models.CatalogStatusPending, models.CatalogStatusInactive)
	}
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrConfigurationInvalid, v.Error())
	}

	if _, err := s.repo.GetCurrency(claims.UserID, in.CurrencyCode); err != nil {
		return nil, ErrCurrencyUnknown
	}

	ownerID := ownerFor(claims)
	taken, err := s.repo.CountryTaken(ownerID, in.Code, in.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check catalog: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: code or name already in catalog", ErrConfigurationInvalid)
	}

	country := &models.Country{
		OwnerID:      ownerID,
		Name:         in.Name,
		Code:         in.Code,
		CurrencyCode: in.CurrencyCode,
		Status:       in.Status,
	}
	if country.Status == "" {
		country.Status = models.CatalogStatusActive
	}

	if err := s.repo.CreateCountry(country); err != nil {
		return nil, fmt.Errorf("failed to create country: %w", err)
	}
	return country, nil
}

func (s *service) CreateCurrency(_ context.Context, claims *models.UserClaims, in CurrencyInput) (*models.Currency, error) {
	v := validation.New()
	v.Required("name", in.Name)
	v.Required("code", in.Code)
	if in.Status != "" {
		v.OneOf("status", in.Status,
			models.CatalogStatusActive, models.CatalogStatusPending, models.CatalogStatusInactive)
	}
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrConfigurationInvalid, v.Error())
	}

	ownerID := ownerFor(claims)
	taken, err := s.repo.CurrencyTaken(ownerID, in.Code, in.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check catalog: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: code or name already in catalog", ErrConfigurationInvalid)
	}

	currency := &models.Currency{
		OwnerID: ownerID,
		Name:    in.Name,
		Code:    in.Code,
		Symbol:  in.Symbol,
		Status:  in.Status,
	}
	if currency.Status == "" {
		currency.Status = models.CatalogStatusActive
	}

	if err := s.repo.CreateCurrency(currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}
	return currency, nil
}

func (s *service) UpdateCountryStatus(_ context.Context, claims *models.UserClaims, id uint, status string) (*models.Country, error) {
	v := validation.New()
	v.OneOf("status", status,
		models.CatalogStatusActive, models.CatalogStatusPending, models.CatalogStatusInactive)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrConfigurationInvalid, v.Error())
	}

	country, err := s.findCountry(claims, id)
	if err != nil {
		return nil, err
	}

	country.Status = status
	if err := s.repo.UpdateCountry(country); err != nil {
		return nil, fmt.Errorf("failed to update country: %w", err)
	}
	return country, nil
}

// ownerFor resolves the row owner: super-admins author the global catalog,
// everyone else authors their own overrides.
func ownerFor(claims *models.UserClaims) *uint {
	if claims.IsSuperAdmin() {
		return nil
	}
	owner := claims.UserID
	return &owner
}

// findCountry loads a country visible to the caller and checks mutation
// rights: global rows belong to super-admins, owned rows to their merchant.
func (s *service) findCountry(claims *models.UserClaims, id uint) (*models.Country, error) {
	countries, err := s.repo.ListCountries(claims.UserID)
	if err != nil {
		return nil, err
	}
	for i := range countries {
		if countries[i].ID != id {
			continue
		}
		c := &countries[i]
		if c.IsGlobal() {
			if !claims.IsSuperAdmin() {
				return nil, scope.ErrForbidden
			}
			return c, nil
		}
		if !scope.For(claims).CanAccess(*c.OwnerID) {
			return nil, scope.ErrForbidden
		}
		return c, nil
	}
	return nil, ErrEntryNotFound
}
