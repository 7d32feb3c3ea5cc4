package checkout

import (
	"context"
	"testing"

	"linkpay/internal/models"
	"linkpay/internal/services/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockLinkRepository struct {
	mock.Mock
}

func (m *mockLinkRepository) Create(link *models.CheckoutLink) error {
	return m.Called(link).Error(0)
}

func (m *mockLinkRepository) Update(link *models.CheckoutLink) error {
	return m.Called(link).Error(0)
}

func (m *mockLinkRepository) Delete(link *models.CheckoutLink) error {
	return m.Called(link).Error(0)
}

func (m *mockLinkRepository) GetByID(id uint) (*models.CheckoutLink, error) {
	args := m.Called(id)
	if l := args.Get(0); l != nil {
		return l.(*models.CheckoutLink), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLinkRepository) GetBySlug(slug string) (*models.CheckoutLink, error) {
	args := m.Called(slug)
	if l := args.Get(0); l != nil {
		return l.(*models.CheckoutLink), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLinkRepository) List(sc scope.Scope) ([]models.CheckoutLink, error) {
	args := m.Called(sc)
	return args.Get(0).([]models.CheckoutLink), args.Error(1)
}

func (m *mockLinkRepository) SlugTaken(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *mockLinkRepository) HasPayments(linkID uint) (bool, error) {
	args := m.Called(linkID)
	return args.Bool(0), args.Error(1)
}

type mockCountrySource struct {
	mock.Mock
}

func (m *mockCountrySource) GetCountry(ownerID uint, code string) (*models.Country, error) {
	args := m.Called(ownerID, code)
	if c := args.Get(0); c != nil {
		return c.(*models.Country), args.Error(1)
	}
	return nil, args.Error(1)
}

func merchant(userID uint) *models.UserClaims {
	return &models.UserClaims{UserID: userID, Role: models.RoleSubscriber}
}

func coveringMethods(codes ...string) []models.PaymentMethod {
	return []models.PaymentMethod{{ID: 7, Name: "Bank Transfer", Countries: codes}}
}

func TestCreateLinkPinsCurrencyFromFirstCountry(t *testing.T) {
	repo := new(mockLinkRepository)
	countries := new(mockCountrySource)
	methods := new(mockMethodLister)

	methods.On("ListByOwner", uint(1), true).Return(coveringMethods("US", "CA"), nil)
	repo.On("SlugTaken", "consulting-call").Return(false, nil)
	countries.On("GetCountry", uint(1), "US").Return(&models.Country{Code: "US", CurrencyCode: "USD"}, nil)
	countries.On("GetCountry", uint(1), "CA").Return(&models.Country{Code: "CA", CurrencyCode: "CAD"}, nil)
	repo.On("Create", mock.AnythingOfType("*models.CheckoutLink")).Return(nil)

	svc := NewService(repo, countries, NewResolver(methods, nil, 0), nil)
	link, err := svc.Create(context.Background(), merchant(1), CreateLinkInput{
		Slug:        "Consulting-Call",
		Title:       "Consulting Call",
		PricingMode: models.PricingFixed,
		Amount:      50,
		Countries:   []string{"US", "CA"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "consulting-call", link.Slug)
	assert.Equal(t, "USD", link.CurrencyCode)
	assert.Equal(t, models.LinkStatusActive, link.Status)
	repo.AssertExpectations(t)
}

func TestCreateLinkSlugTaken(t *testing.T) {
	repo := new(mockLinkRepository)
	methods := new(mockMethodLister)
	repo.On("SlugTaken", "consulting-call").Return(true, nil)

	svc := NewService(repo, new(mockCountrySource), NewResolver(methods, nil, 0), nil)
	_, err := svc.Create(context.Background(), merchant(1), CreateLinkInput{
		Slug:        "consulting-call",
		Title:       "Consulting Call",
		PricingMode: models.PricingFixed,
		Amount:      50,
		Countries:   []string{"US"},
	})

	assert.ErrorIs(t, err, ErrSlugTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateLinkRejectsUncoveredCountry(t *testing.T) {
	repo := new(mockLinkRepository)
	methods := new(mockMethodLister)

	methods.On("ListByOwner", uint(1), true).Return(coveringMethods("US"), nil)
	repo.On("SlugTaken", "consulting-call").Return(false, nil)

	svc := NewService(repo, new(mockCountrySource), NewResolver(methods, nil, 0), nil)
	_, err := svc.Create(context.Background(), merchant(1), CreateLinkInput{
		Slug:        "consulting-call",
		Title:       "Consulting Call",
		PricingMode: models.PricingFixed,
		Amount:      50,
		Countries:   []string{"US", "FR"},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
	assert.Contains(t, err.Error(), "FR")
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateLinkInvalidPricing(t *testing.T) {
	svc := NewService(new(mockLinkRepository), new(mockCountrySource), NewResolver(new(mockMethodLister), nil, 0), nil)

	// Flexible links need a positive bounded range, not a fixed amount.
	_, err := svc.Create(context.Background(), merchant(1), CreateLinkInput{
		Slug:        "tips",
		Title:       "Tips",
		PricingMode: models.PricingFlexible,
		Amount:      50,
		Countries:   []string{"US"},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
}

func TestUpdateLinkRejectsUncoveredCountry(t *testing.T) {
	repo := new(mockLinkRepository)
	methods := new(mockMethodLister)

	existing := &models.CheckoutLink{
		ID:           3,
		OwnerID:      1,
		Slug:         "consulting-call",
		Title:        "Consulting Call",
		PricingMode:  models.PricingFixed,
		Amount:       50,
		CurrencyCode: "USD",
		Status:       models.LinkStatusActive,
		Countries:    models.StringList{"US"},
	}
	repo.On("GetByID", uint(3)).Return(existing, nil)
	methods.On("ListByOwner", uint(1), true).Return(coveringMethods("US"), nil)

	svc := NewService(repo, new(mockCountrySource), NewResolver(methods, nil, 0), nil)
	_, err := svc.Update(context.Background(), merchant(1), 3, UpdateLinkInput{
		Title:       "Consulting Call",
		PricingMode: models.PricingFixed,
		Amount:      50,
		Countries:   []string{"US", "FR"},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateLinkForbiddenForOtherMerchant(t *testing.T) {
	repo := new(mockLinkRepository)
	repo.On("GetByID", uint(3)).Return(&models.CheckoutLink{ID: 3, OwnerID: 1}, nil)

	svc := NewService(repo, new(mockCountrySource), NewResolver(new(mockMethodLister), nil, 0), nil)
	_, err := svc.Update(context.Background(), merchant(2), 3, UpdateLinkInput{})

	assert.ErrorIs(t, err, scope.ErrForbidden)
}

func TestCreateLinkUnknownCountry(t *testing.T) {
	repo := new(mockLinkRepository)
	countries := new(mockCountrySource)
	methods := new(mockMethodLister)

	// A "Global"-scoped method covers any code, including a typo.
	methods.On("ListByOwner", uint(1), true).Return(coveringMethods(models.CountryScopeGlobal), nil)
	repo.On("SlugTaken", "consulting-call").Return(false, nil)
	countries.On("GetCountry", uint(1), "US").Return(&models.Country{Code: "US", CurrencyCode: "USD"}, nil)
	countries.On("GetCountry", uint(1), "XX").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, countries, NewResolver(methods, nil, 0), nil)
	_, err := svc.Create(context.Background(), merchant(1), CreateLinkInput{
		Slug:        "consulting-call",
		Title:       "Consulting Call",
		PricingMode: models.PricingFixed,
		Amount:      50,
		Countries:   []string{"US", "XX"},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
	assert.Contains(t, err.Error(), "XX")
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateLinkUnknownCountry(t *testing.T) {
	repo := new(mockLinkRepository)
	countries := new(mockCountrySource)
	methods := new(mockMethodLister)

	existing := &models.CheckoutLink{
		ID:           3,
		OwnerID:      1,
		Slug:         "consulting-call",
		Title:        "Consulting Call",
		PricingMode:  models.PricingFixed,
		Amount:       50,
		CurrencyCode: "USD",
		Status:       models.LinkStatusActive,
		Countries:    models.StringList{"US"},
	}
	repo.On("GetByID", uint(3)).Return(existing, nil)
	methods.On("ListByOwner", uint(1), true).Return(coveringMethods(models.CountryScopeGlobal), nil)
	countries.On("GetCountry", uint(1), "US").Return(&models.Country{Code: "US", CurrencyCode: "USD"}, nil)
	countries.On("GetCountry", uint(1), "XX").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, countries, NewResolver(methods, nil, 0), nil)
	_, err := svc.Update(context.Background(), merchant(1), 3, UpdateLinkInput{
		Title:       "Consulting Call",
		PricingMode: models.PricingFixed,
		Amount:      50,
		Countries:   []string{"US", "XX"},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateLinkInvalidatesResolutions(t *testing.T) {
	repo := new(mockLinkRepository)
	methods := new(mockMethodLister)
	cache := newFakeResolutionCache()
	cache.entries[resolutionKey(1, 3, "US")] = &Resolution{CurrencyCode: "USD"}

	existing := &models.CheckoutLink{
		ID:           3,
		OwnerID:      1,
		Slug:         "consulting-call",
		Title:        "Consulting Call",
		PricingMode:  models.PricingFixed,
		Amount:       50,
		CurrencyCode: "USD",
		Status:       models.LinkStatusActive,
		Countries:    models.StringList{"US"},
	}
	repo.On("GetByID", uint(3)).Return(existing, nil)
	methods.On("ListByOwner", uint(1), true).Return(coveringMethods("US"), nil)
	repo.On("Update", mock.AnythingOfType("*models.CheckoutLink")).Return(nil)

	countries := new(mockCountrySource)
	countries.On("GetCountry", uint(1), "US").Return(&models.Country{Code: "US", CurrencyCode: "USD"}, nil)

	svc := NewService(repo, countries, NewResolver(methods, nil, 0), cache)
	_, err := svc.Update(context.Background(), merchant(1), 3, UpdateLinkInput{
		Title:       "Consulting Call",
		PricingMode: models.PricingFixed,
		Amount:      75,
		Countries:   []string{"US"},
	})

	assert.NoError(t, err)
	assert.Empty(t, cache.entries)
}

func TestDeleteLinkWithPayments(t *testing.T) {
	repo := new(mockLinkRepository)
	repo.On("GetByID", uint(3)).Return(&models.CheckoutLink{ID: 3, OwnerID: 1}, nil)
	repo.On("HasPayments", uint(3)).Return(true, nil)

	svc := NewService(repo, new(mockCountrySource), NewResolver(new(mockMethodLister), nil, 0), nil)
	err := svc.Delete(context.Background(), merchant(1), 3)

	assert.ErrorIs(t, err, ErrLinkInUse)
	repo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestGetPublicInactiveLink(t *testing.T) {
	repo := new(mockLinkRepository)
	repo.On("GetBySlug", "consulting-call").Return(&models.CheckoutLink{
		ID:     3,
		Slug:   "consulting-call",
		Status: models.LinkStatusInactive,
	}, nil)

	svc := NewService(repo, new(mockCountrySource), NewResolver(new(mockMethodLister), nil, 0), nil)
	_, err := svc.GetPublic(context.Background(), "consulting-call")

	assert.ErrorIs(t, err, ErrLinkInactive)
}
