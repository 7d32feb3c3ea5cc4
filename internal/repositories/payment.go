package repositories

import (
	"context"
	"time"

	"linkpay/internal/models"
	"linkpay/internal/services/scope"

	"gorm.io/gorm"
)

// PaymentRepository provides access to payment records. Status is never
// written through Update; all status changes go through TransitionStatus so
// that the compare-and-swap discipline cannot be bypassed.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByPublicID(publicID string) (*models.Payment, error)
	List(sc scope.Scope, limit, offset int) ([]models.Payment, int64, error)
	// TransitionStatus atomically moves the payment from the expected status
	// to the target status. It reports false when the row was not in the
	// expected status anymore, without touching it.
	TransitionStatus(ctx context.Context, id uint, from, to string, patch map[string]interface{}) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByPublicID(publicID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("public_id = ?", publicID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) List(sc scope.Scope, limit, offset int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	q := sc.Apply(r.db.Model(&models.Payment{}))
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Limit(limit).Offset(offset).Order("created_at desc").Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) TransitionStatus(ctx context.Context, id uint, from, to string, patch map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range patch {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
