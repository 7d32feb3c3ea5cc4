package models

import "time"

// Catalog entry statuses shared by Country and Currency.
const (
	CatalogStatusActive   = "active"
	CatalogStatusPending  = "pending"
	CatalogStatusInactive = "inactive"
)

// Currency is a catalog entry. A nil OwnerID marks a global (shared) row; a
// merchant-owned row with the same code shadows the global one for that
// merchant.
type Currency struct {
	ID        uint   `gorm:"primarykey"`
	OwnerID   *uint  `gorm:"uniqueIndex:idx_currency_owner_code;uniqueIndex:idx_currency_owner_name"`
	Name      string `gorm:"not null;uniqueIndex:idx_currency_owner_name"`
	Code      string `gorm:"not null;uniqueIndex:idx_currency_owner_code"`
	Symbol    string
	Status    string `gorm:"default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Country maps to its display currency via CurrencyCode. Ownership semantics
// are the same as Currency.
type Country struct {
	ID           uint   `gorm:"primarykey"`
	OwnerID      *uint  `gorm:"uniqueIndex:idx_country_owner_code;uniqueIndex:idx_country_owner_name"`
	Name         string `gorm:"not null;uniqueIndex:idx_country_owner_name"`
	Code         string `gorm:"not null;uniqueIndex:idx_country_owner_code"`
	Status       string `gorm:"default:'active'"`
	CurrencyCode string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsGlobal reports whether the row belongs to the shared catalog.
func (c *Country) IsGlobal() bool { return c.OwnerID == nil }

func (c *Currency) IsGlobal() bool { return c.OwnerID == nil }
