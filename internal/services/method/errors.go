package method

import "errors"

// Service errors
var (
	ErrMethodNotFound       = errors.New("payment method not found")
	ErrConfigurationInvalid = errors.New("invalid payment method configuration")
)
