package repositories

import (
	"linkpay/internal/models"
	"linkpay/internal/services/scope"

	"gorm.io/gorm"
)

// CheckoutLinkRepository provides access to checkout links.
type CheckoutLinkRepository interface {
	Create(link *models.CheckoutLink) error
	Update(link *models.CheckoutLink) error
	Delete(link *models.CheckoutLink) error
	GetByID(id uint) (*models.CheckoutLink, error)
	GetBySlug(slug string) (*models.CheckoutLink, error)
	List(sc scope.Scope) ([]models.CheckoutLink, error)
	SlugTaken(slug string) (bool, error)
	// HasPayments reports whether any payment references the link. Links
	// with payments must never be deleted.
	HasPayments(linkID uint) (bool, error)
}

type checkoutLinkRepository struct {
	db *gorm.DB
}

func NewCheckoutLinkRepository(db *gorm.DB) CheckoutLinkRepository {
	return &checkoutLinkRepository{db: db}
}

func (r *checkoutLinkRepository) Create(link *models.CheckoutLink) error {
	return r.db.Create(link).Error
}

func (r *checkoutLinkRepository) Update(link *models.CheckoutLink) error {
	return r.db.Save(link).Error
}

func (r *checkoutLinkRepository) Delete(link *models.CheckoutLink) error {
	return r.db.Delete(link).Error
}

func (r *checkoutLinkRepository) GetByID(id uint) (*models.CheckoutLink, error) {
	var link models.CheckoutLink
	if err := r.db.First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *checkoutLinkRepository) GetBySlug(slug string) (*models.CheckoutLink, error) {
	var link models.CheckoutLink
	if err := r.db.Where("slug = ?", slug).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *checkoutLinkRepository) List(sc scope.Scope) ([]models.CheckoutLink, error) {
	var links []models.CheckoutLink
	err := sc.Apply(r.db).Order("created_at desc").Find(&links).Error
	return links, err
}

func (r *checkoutLinkRepository) SlugTaken(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CheckoutLink{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *checkoutLinkRepository) HasPayments(linkID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Where("checkout_link_id = ?", linkID).Count(&count).Error
	return count > 0, err
}
