package auth

import (
	"errors"
	"testing"

	"linkpay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepository) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *mockUserRepository) ListSuperAdmins() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByEmail", "merchant@example.com").Return(nil, errors.New("not found"))
	repo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	svc := NewService(repo)
	user, err := svc.Register("Merchant", "merchant@example.com", "s3cret-pass!")

	assert.NoError(t, err)
	// The super-admin role is never assignable through registration.
	assert.Equal(t, models.RoleRegisteredUser, user.Role)
	assert.NotEqual(t, "s3cret-pass!", user.Password)
	assert.Equal(t, 1, user.TokenVersion)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := NewService(new(mockUserRepository))

	_, err := svc.Register("Merchant", "merchant@example.com", "short!")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register("Merchant", "merchant@example.com", "nospecialchar1")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("GetByEmail", "merchant@example.com").Return(&models.User{}, nil)

	svc := NewService(repo)
	_, err := svc.Register("Merchant", "merchant@example.com", "s3cret-pass!")

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass!"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	repo := new(mockUserRepository)
	repo.On("GetByEmail", "merchant@example.com").Return(&models.User{
		Model:        gorm.Model{ID: 1},
		Email:        "merchant@example.com",
		Password:     string(hashed),
		Role:         models.RoleSubscriber,
		TokenVersion: 1,
	}, nil)

	svc := NewService(repo)

	user, access, refresh, err := svc.Login("merchant@example.com", "s3cret-pass!")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	_, _, _, err = svc.Login("merchant@example.com", "wrong-pass!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesTokens(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("IncrementTokenVersion", uint(1)).Return(nil)

	svc := NewService(repo)
	assert.NoError(t, svc.Logout(1))
	repo.AssertExpectations(t)
}
