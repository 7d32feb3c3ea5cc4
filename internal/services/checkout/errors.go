package checkout

import "errors"

// Service errors
var (
	ErrLinkNotFound             = errors.New("checkout link not found")
	ErrLinkInactive             = errors.New("checkout link is not active")
	ErrCountryNotSupported      = errors.New("country not supported by this checkout link")
	ErrNoPaymentMethodAvailable = errors.New("no payment method available for this country")
	ErrConfigurationInvalid     = errors.New("invalid checkout link configuration")
	ErrSlugTaken                = errors.New("slug already in use")
	ErrLinkInUse                = errors.New("checkout link is referenced by payments")
)
