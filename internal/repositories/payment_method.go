package repositories

import (
	"linkpay/internal/models"
	"linkpay/internal/services/scope"

	"gorm.io/gorm"
)

// PaymentMethodRepository provides access to merchant payment methods.
type PaymentMethodRepository interface {
	Create(method *models.PaymentMethod) error
	Update(method *models.PaymentMethod) error
	GetByID(id uint) (*models.PaymentMethod, error)
	// ListByOwner returns the owner's methods in authored (creation) order.
	ListByOwner(ownerID uint, onlyActive bool) ([]models.PaymentMethod, error)
	List(sc scope.Scope) ([]models.PaymentMethod, error)
	NameTaken(ownerID uint, name string, excludeID uint) (bool, error)
}

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(method *models.PaymentMethod) error {
	return r.db.Create(method).Error
}

func (r *paymentMethodRepository) Update(method *models.PaymentMethod) error {
	return r.db.Save(method).Error
}

func (r *paymentMethodRepository) GetByID(id uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.First(&method, id).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) ListByOwner(ownerID uint, onlyActive bool) ([]models.PaymentMethod, error) {
	q := r.db.Where("owner_id = ?", ownerID)
	if onlyActive {
		q = q.Where("status = ?", models.MethodStatusActive)
	}
	var methods []models.PaymentMethod
	err := q.Order("id asc").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) List(sc scope.Scope) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := sc.Apply(r.db).Order("id asc").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) NameTaken(ownerID uint, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.PaymentMethod{}).
		Where("owner_id = ? AND name = ?", ownerID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
