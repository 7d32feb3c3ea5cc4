package models

import "time"

// Notification types.
const (
	NotificationTypeProofSubmitted = "payment_proof_submitted"
	NotificationTypePaymentAudit   = "payment_audit"
)

// Notification is an in-app message for one recipient. Rows are created only
// as a side effect of a payment state transition; afterwards only the Read
// flag may change, and only by the recipient.
type Notification struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Message   string
	Type      string
	Payload   JSON `gorm:"type:jsonb"`
	Read      bool `gorm:"default:false"`
	CreatedAt time.Time
}
