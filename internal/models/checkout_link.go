package models

import "time"

// Pricing modes for checkout links.
const (
	PricingFixed    = "fixed"
	PricingFlexible = "flexible"
)

const (
	LinkStatusActive   = "active"
	LinkStatusInactive = "inactive"
)

// CheckoutLink is a merchant-published, shareable pricing configuration.
// The slug is immutable once created and globally unique. The currency is
// fixed at creation time from the first selected country's currency mapping.
type CheckoutLink struct {
	ID           uint   `gorm:"primarykey"`
	OwnerID      uint   `gorm:"not null;index"`
	Slug         string `gorm:"uniqueIndex;not null"`
	Title        string `gorm:"not null"`
	PricingMode  string `gorm:"not null"`
	Amount       float64
	MinAmount    float64
	MaxAmount    float64
	CurrencyCode string     `gorm:"not null"`
	Status       string     `gorm:"default:'active'"`
	Countries    StringList `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AmountAllowed reports whether amount is chargeable on this link.
func (l *CheckoutLink) AmountAllowed(amount float64) bool {
	if l.PricingMode == PricingFlexible {
		return amount >= l.MinAmount && amount <= l.MaxAmount
	}
	return amount == l.Amount
}
