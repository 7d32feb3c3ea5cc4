package models

import "time"

// Payment method kinds. A method is a tagged variant: manual methods carry
// ordered custom fields with pay-in instructions, redirect methods carry a
// destination URL. The irrelevant payload is always empty, never nulled-out
// ad hoc by callers.
const (
	MethodKindManual   = "manual"
	MethodKindRedirect = "redirect_link"
)

// CountryScopeGlobal is the sentinel scope meaning "every country".
const CountryScopeGlobal = "Global"

const (
	MethodStatusActive   = "active"
	MethodStatusPending  = "pending"
	MethodStatusInactive = "inactive"
)

// CustomField is one instruction line on a manual payment method, e.g.
// {Label: "Account number", Value: "0012345", Required: true}.
type CustomField struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Required bool   `json:"required"`
}

type PaymentMethod struct {
	ID        uint       `gorm:"primarykey"`
	OwnerID   uint       `gorm:"not null;uniqueIndex:idx_method_owner_name"`
	Name      string     `gorm:"not null;uniqueIndex:idx_method_owner_name"`
	Kind      string     `gorm:"not null"`
	Countries StringList `gorm:"type:jsonb"`
	Status    string     `gorm:"default:'pending'"`
	Fields    FieldList  `gorm:"type:jsonb"` // manual kind only
	LinkURL   string     // redirect_link kind only
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal reports whether the method applies to all countries.
func (m *PaymentMethod) IsGlobal() bool {
	return m.Countries.Contains(CountryScopeGlobal)
}

// Covers reports whether the method can be used from the given country.
func (m *PaymentMethod) Covers(countryCode string) bool {
	return m.IsGlobal() || m.Countries.Contains(countryCode)
}
