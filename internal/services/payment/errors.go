package payment

import "errors"

// Service errors
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrSubmissionInvalid = errors.New("invalid checkout submission")
	ErrInvalidTransition = errors.New("invalid payment status transition")
	ErrProofRequired     = errors.New("proof of payment reference is required")
	ErrAmountOutOfRange  = errors.New("amount not allowed by this checkout link")
	ErrMethodNotEligible = errors.New("payment method not eligible for this checkout")
)
