package models

import "time"

// Payment statuses. Transitions between them are owned exclusively by the
// payment service's state machine; nothing else assigns Status directly.
const (
	PaymentStatusPending             = "pending"
	PaymentStatusPendingVerification = "pending_verification"
	PaymentStatusCompleted           = "completed"
	PaymentStatusFailed              = "failed"
	PaymentStatusRefunded            = "refunded"
)

// Payment is the ledger entry for one customer checkout. OwnerID is the
// merchant being paid. PublicID is the opaque id handed to the customer; the
// bearer of it may attach proof of payment but nothing else.
type Payment struct {
	ID             uint   `gorm:"primarykey"`
	PublicID       string `gorm:"uniqueIndex;not null"`
	OwnerID        uint   `gorm:"not null;index"`
	CheckoutLinkID *uint
	MethodID       uint
	MethodName     string
	CustomerName   string
	CustomerEmail  string `gorm:"not null"`
	CountryCode    string
	Amount         float64 `gorm:"not null"`
	CurrencyCode   string  `gorm:"not null"`
	Status         string  `gorm:"not null;default:'pending'"`
	ProofURL       string
	ReviewNotes    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
