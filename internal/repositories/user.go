package repositories

import (
	"context"

	"linkpay/internal/models"
	"linkpay/internal/repositories/cache"

	"gorm.io/gorm"
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	IncrementTokenVersion(userID uint) error
	ListSuperAdmins() ([]models.User, error)
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewUserRepository(db *gorm.DB, cacheService *cache.CacheService) UserRepository {
	return &userRepository{db: db, cache: cacheService}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return err
	}
	r.invalidate(user)
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		if found, err := r.cache.Get(context.Background(), key, &user); err == nil && found {
			return &user, nil
		}
	}

	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}

	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		_ = r.cache.Set(context.Background(), key, &user)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	err := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
	if err != nil {
		return err
	}
	if r.cache != nil {
		_ = r.cache.Delete(context.Background(), r.cache.GenerateKey("user", "id", userID))
	}
	return nil
}

func (r *userRepository) ListSuperAdmins() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", models.RoleSuperAdmin).Find(&users).Error
	return users, err
}

func (r *userRepository) invalidate(user *models.User) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(context.Background(), r.cache.GenerateKey("user", "id", user.ID))
}
