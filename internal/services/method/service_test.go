package method

import (
	"context"
	"testing"

	"linkpay/internal/models"
	"linkpay/internal/services/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(method *models.PaymentMethod) error {
	return m.Called(method).Error(0)
}

func (m *mockRepository) Update(method *models.PaymentMethod) error {
	return m.Called(method).Error(0)
}

func (m *mockRepository) GetByID(id uint) (*models.PaymentMethod, error) {
	args := m.Called(id)
	if pm := args.Get(0); pm != nil {
		return pm.(*models.PaymentMethod), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(sc scope.Scope) ([]models.PaymentMethod, error) {
	args := m.Called(sc)
	return args.Get(0).([]models.PaymentMethod), args.Error(1)
}

func (m *mockRepository) NameTaken(ownerID uint, name string, excludeID uint) (bool, error) {
	args := m.Called(ownerID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func merchant(userID uint) *models.UserClaims {
	return &models.UserClaims{UserID: userID, Role: models.RoleSubscriber}
}

func TestCreateManualMethod(t *testing.T) {
	repo := new(mockRepository)
	invalidator := new(mockInvalidator)

	repo.On("NameTaken", uint(1), "Bank Transfer", uint(0)).Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*models.PaymentMethod")).Return(nil)
	invalidator.On("DeleteByPrefix", mock.Anything, "resolve:owner:1").Return(nil)

	svc := NewService(repo, invalidator)
	m, err := svc.Create(context.Background(), merchant(1), CreateInput{
		Name:      "Bank Transfer",
		Kind:      models.MethodKindManual,
		Countries: []string{"US"},
		Fields: []models.CustomField{
			{Label: "Account number", Value: "0012345", Required: true},
		},
		// A stray redirect payload on a manual method is discarded.
		LinkURL: "https://pay.example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.MethodKindManual, m.Kind)
	assert.Empty(t, m.LinkURL)
	assert.Len(t, m.Fields, 1)
	assert.Equal(t, models.MethodStatusPending, m.Status)
	invalidator.AssertExpectations(t)
}

func TestCreateRedirectMethod(t *testing.T) {
	repo := new(mockRepository)
	repo.On("NameTaken", uint(1), "Card Redirect", uint(0)).Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*models.PaymentMethod")).Return(nil)

	svc := NewService(repo, nil)
	m, err := svc.Create(context.Background(), merchant(1), CreateInput{
		Name:      "Card Redirect",
		Kind:      models.MethodKindRedirect,
		Countries: []string{models.CountryScopeGlobal},
		LinkURL:   "https://pay.example.com/card",
		Fields: []models.CustomField{
			{Label: "ignored", Value: "ignored"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/card", m.LinkURL)
	assert.Empty(t, m.Fields)
}

func TestCreateRedirectMethodRequiresURL(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), merchant(1), CreateInput{
		Name:      "Card Redirect",
		Kind:      models.MethodKindRedirect,
		Countries: []string{"US"},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateMethodUnknownKind(t *testing.T) {
	svc := NewService(new(mockRepository), nil)

	_, err := svc.Create(context.Background(), merchant(1), CreateInput{
		Name:      "Mystery",
		Kind:      "carrier_pigeon",
		Countries: []string{"US"},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
}

func TestCreateMethodRequiresCountries(t *testing.T) {
	svc := NewService(new(mockRepository), nil)

	_, err := svc.Create(context.Background(), merchant(1), CreateInput{
		Name: "Bank Transfer",
		Kind: models.MethodKindManual,
		Fields: []models.CustomField{
			{Label: "Account number", Value: "0012345"},
		},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
}

func TestCreateMethodNameTaken(t *testing.T) {
	repo := new(mockRepository)
	repo.On("NameTaken", uint(1), "Bank Transfer", uint(0)).Return(true, nil)

	svc := NewService(repo, nil)
	_, err := svc.Create(context.Background(), merchant(1), CreateInput{
		Name:      "Bank Transfer",
		Kind:      models.MethodKindManual,
		Countries: []string{"US"},
		Fields: []models.CustomField{
			{Label: "Account number", Value: "0012345"},
		},
	})

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateMethodKeepsKind(t *testing.T) {
	repo := new(mockRepository)
	existing := &models.PaymentMethod{
		ID:        7,
		OwnerID:   1,
		Name:      "Card Redirect",
		Kind:      models.MethodKindRedirect,
		Countries: models.StringList{"US"},
		Status:    models.MethodStatusActive,
		LinkURL:   "https://pay.example.com/card",
	}
	repo.On("GetByID", uint(7)).Return(existing, nil)
	repo.On("NameTaken", uint(1), "Card Redirect", uint(7)).Return(false, nil)
	repo.On("Update", mock.AnythingOfType("*models.PaymentMethod")).Return(nil)

	svc := NewService(repo, nil)
	m, err := svc.Update(context.Background(), merchant(1), 7, UpdateInput{
		Name:      "Card Redirect",
		Countries: []string{"US", "CA"},
		LinkURL:   "https://pay.example.com/card-v2",
		Fields: []models.CustomField{
			{Label: "ignored", Value: "ignored"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, models.MethodKindRedirect, m.Kind)
	assert.Equal(t, "https://pay.example.com/card-v2", m.LinkURL)
	assert.Empty(t, m.Fields)
}

func TestUpdateMethodForbiddenForOtherMerchant(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", uint(7)).Return(&models.PaymentMethod{ID: 7, OwnerID: 1}, nil)

	svc := NewService(repo, nil)
	_, err := svc.Update(context.Background(), merchant(2), 7, UpdateInput{Name: "X"})

	assert.ErrorIs(t, err, scope.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}
