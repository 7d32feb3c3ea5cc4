package repositories

import (
	"linkpay/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository provides access to the country/currency catalog. Reads
// merge the global catalog (nil owner) with the merchant's own rows; a
// merchant row shadows the global row with the same code.
type CatalogRepository interface {
	ListCountries(ownerID uint) ([]models.Country, error)
	ListCurrencies(ownerID uint) ([]models.Currency, error)
	GetCountry(ownerID uint, code string) (*models.Country, error)
	GetCurrency(ownerID uint, code string) (*models.Currency, error)
	CreateCountry(country *models.Country) error
	CreateCurrency(currency *models.Currency) error
	UpdateCountry(country *models.Country) error
	UpdateCurrency(currency *models.Currency) error
	// CountryTaken and CurrencyTaken report whether a row with the same code
	// or name exists for the same owner. Postgres unique indexes do not
	// collide on NULL owner ids, so global-row uniqueness is enforced here.
	CountryTaken(ownerID *uint, code, name string) (bool, error)
	CurrencyTaken(ownerID *uint, code, name string) (bool, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCountries(ownerID uint) ([]models.Country, error) {
	var rows []models.Country
	err := r.db.
		Where("owner_id IS NULL OR owner_id = ?", ownerID).
		Order("name asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return dedupCountries(rows), nil
}

func (r *catalogRepository) ListCurrencies(ownerID uint) ([]models.Currency, error) {
	var rows []models.Currency
	err := r.db.
		Where("owner_id IS NULL OR owner_id = ?", ownerID).
		Order("name asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return dedupCurrencies(rows), nil
}

func (r *catalogRepository) GetCountry(ownerID uint, code string) (*models.Country, error) {
	var country models.Country
	// Owned rows shadow global ones, so prefer a non-null owner.
	err := r.db.
		Where("code = ? AND (owner_id IS NULL OR owner_id = ?)", code, ownerID).
		Order("owner_id asc NULLS LAST").
		First(&country).Error
	if err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *catalogRepository) GetCurrency(ownerID uint, code string) (*models.Currency, error) {
	var currency models.Currency
	err := r.db.
		Where("code = ? AND (owner_id IS NULL OR owner_id = ?)", code, ownerID).
		Order("owner_id asc NULLS LAST").
		First(&currency).Error
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

func (r *catalogRepository) CreateCountry(country *models.Country) error {
	return r.db.Create(country).Error
}

func (r *catalogRepository) CreateCurrency(currency *models.Currency) error {
	return r.db.Create(currency).Error
}

func (r *catalogRepository) UpdateCountry(country *models.Country) error {
	return r.db.Save(country).Error
}

func (r *catalogRepository) UpdateCurrency(currency *models.Currency) error {
	return r.db.Save(currency).Error
}

func (r *catalogRepository) CountryTaken(ownerID *uint, code, name string) (bool, error) {
	q := r.db.Model(&models.Country{}).Where("code = ? OR name = ?", code, name)
	if ownerID == nil {
		q = q.Where("owner_id IS NULL")
	} else {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *catalogRepository) CurrencyTaken(ownerID *uint, code, name string) (bool, error) {
	q := r.db.Model(&models.Currency{}).Where("code = ? OR name = ?", code, name)
	if ownerID == nil {
		q = q.Where("owner_id IS NULL")
	} else {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func dedupCountries(rows []models.Country) []models.Country {
	owned := make(map[string]bool)
	for _, c := range rows {
		if !c.IsGlobal() {
			owned[c.Code] = true
		}
	}
	out := make([]models.Country, 0, len(rows))
	for _, c := range rows {
		if c.IsGlobal() && owned[c.Code] {
			continue // shadowed by a merchant override
		}
		out = append(out, c)
	}
	return out
}

func dedupCurrencies(rows []models.Currency) []models.Currency {
	owned := make(map[string]bool)
	for _, c := range rows {
		if !c.IsGlobal() {
			owned[c.Code] = true
		}
	}
	out := make([]models.Currency, 0, len(rows))
	for _, c := range rows {
		if c.IsGlobal() && owned[c.Code] {
			continue
		}
		out = append(out, c)
	}
	return out
}
