package catalog

import "errors"

// Service errors
var (
	ErrEntryNotFound        = errors.New("catalog entry not found")
	ErrConfigurationInvalid = errors.New("invalid catalog entry")
	ErrCurrencyUnknown      = errors.New("unknown currency code")
)
