package validation

import (
	"strconv"

	"linkpay/internal/models"
)

// PaymentMethod validates a payment method against the data-model
// invariants: non-empty country scope, a URL only for redirect methods and
// custom fields only for manual ones.
func (v *Validator) PaymentMethod(m *models.PaymentMethod) {
	v.Required("name", m.Name)
	v.OneOf("kind", m.Kind, models.MethodKindManual, models.MethodKindRedirect)
	v.OneOf("status", m.Status,
		models.MethodStatusActive, models.MethodStatusPending, models.MethodStatusInactive)
	v.Check(len(m.Countries) > 0, "countries", "country scope must not be empty")

	switch m.Kind {
	case models.MethodKindRedirect:
		v.Required("link_url", m.LinkURL)
		v.Check(len(m.Fields) == 0, "fields", "not allowed on a redirect method")
	case models.MethodKindManual:
		v.Check(m.LinkURL == "", "link_url", "not allowed on a manual method")
		for i, f := range m.Fields {
			if f.Label == "" {
				v.AddError("fields", "field "+strconv.Itoa(i)+" is missing a label")
			}
		}
	}
}

// CheckoutLink validates the pricing-mode invariants: fixed needs a positive
// amount and no bounds, flexible needs 0 < min < max and no single amount.
func (v *Validator) CheckoutLink(l *models.CheckoutLink) {
	v.Required("title", l.Title)
	v.Required("slug", l.Slug)
	v.Slug("slug", l.Slug)
	v.OneOf("pricing_mode", l.PricingMode, models.PricingFixed, models.PricingFlexible)
	v.OneOf("status", l.Status, models.LinkStatusActive, models.LinkStatusInactive)
	v.Check(len(l.Countries) > 0, "countries", "at least one country is required")
	v.Check(!l.Countries.Contains(models.CountryScopeGlobal), "countries", "links enumerate countries explicitly")

	switch l.PricingMode {
	case models.PricingFixed:
		v.Check(l.Amount > 0, "amount", "must be greater than zero")
		v.Check(l.MinAmount == 0 && l.MaxAmount == 0, "bounds", "not allowed with fixed pricing")
	case models.PricingFlexible:
		v.Check(l.MinAmount > 0, "min_amount", "must be greater than zero")
		v.Check(l.MinAmount < l.MaxAmount, "bounds", "min must be less than max")
		v.Check(l.Amount == 0, "amount", "not allowed with flexible pricing")
	}
}

// CheckoutSubmission validates a customer's payment submission.
func (v *Validator) CheckoutSubmission(customerEmail string, amount float64) {
	v.Required("customer_email", customerEmail)
	if customerEmail != "" {
		v.Email("customer_email", customerEmail)
	}
	v.Check(amount > 0, "amount", "must be greater than zero")
}
