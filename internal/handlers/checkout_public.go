package handlers

import (
	"errors"

	"linkpay/internal/services/checkout"
	"linkpay/internal/services/payment"
	"linkpay/internal/services/storage"
	"linkpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// PublicCheckoutHandler serves the unauthenticated customer-facing checkout
// flow: link lookup, method resolution, payment submission and proof upload.
type PublicCheckoutHandler struct {
	links    checkout.Service
	resolver *checkout.Resolver
	payments payment.Service
	proofs   storage.ProofStore
}

func NewPublicCheckoutHandler(
	links checkout.Service,
	resolver *checkout.Resolver,
	payments payment.Service,
	proofs storage.ProofStore,
) *PublicCheckoutHandler {
	return &PublicCheckoutHandler{
		links:    links,
		resolver: resolver,
		payments: payments,
		proofs:   proofs,
	}
}

// GetLink returns the public view of an active checkout link.
func (h *PublicCheckoutHandler) GetLink(c *fiber.Ctx) error {
	link, err := h.links.GetPublic(c.Context(), c.Params("slug"))
	if err != nil {
		return publicCheckoutError(c, err)
	}

	return response.Success(c, "Checkout link", fiber.Map{
		"slug":         link.Slug,
		"title":        link.Title,
		"pricing_mode": link.PricingMode,
		"amount":       link.Amount,
		"min_amount":   link.MinAmount,
		"max_amount":   link.MaxAmount,
		"currency":     link.CurrencyCode,
		"countries":    link.Countries,
	})
}

// ResolveMethods returns the payment methods usable from the customer's
// country, in the merchant's authored order.
func (h *PublicCheckoutHandler) ResolveMethods(c *fiber.Ctx) error {
	countryCode := c.Query("country")
	if countryCode == "" {
		return response.BadRequest(c, "country query parameter is required")
	}

	link, err := h.links.GetPublic(c.Context(), c.Params("slug"))
	if err != nil {
		return publicCheckoutError(c, err)
	}

	res, err := h.resolver.Resolve(c.Context(), link, countryCode)
	if err != nil {
		return publicCheckoutError(c, err)
	}
	return response.Success(c, "Eligible payment methods", res)
}

// CreatePayment records a pending payment for a checkout submission and
// hands the customer the opaque payment id used for proof upload.
func (h *PublicCheckoutHandler) CreatePayment(c *fiber.Ctx) error {
	link, err := h.links.GetPublic(c.Context(), c.Params("slug"))
	if err != nil {
		return publicCheckoutError(c, err)
	}

	var input payment.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	p, err := h.payments.CreateFromCheckout(c.Context(), link, input)
	if err != nil {
		return publicCheckoutError(c, err)
	}

	return response.Created(c, "Payment created", fiber.Map{
		"payment_id": p.PublicID,
		"status":     p.Status,
		"amount":     p.Amount,
		"currency":   p.CurrencyCode,
		"method":     p.MethodName,
	})
}

// SubmitProof attaches proof of payment. It accepts either a multipart file
// upload (stored through the proof store) or a proof_url in the JSON body.
func (h *PublicCheckoutHandler) SubmitProof(c *fiber.Ctx) error {
	publicID := c.Params("id")

	proofURL := ""
	if file, err := c.FormFile("proof"); err == nil {
		f, err := file.Open()
		if err != nil {
			return response.BadRequest(c, "Unreadable upload")
		}
		defer f.Close()

		proofURL, err = h.proofs.Save(c.Context(), file.Filename, f)
		if err != nil {
			return response.ServerError(c, "Failed to store proof")
		}
	} else {
		var input struct {
			ProofURL string `json:"proof_url"`
		}
		if err := c.BodyParser(&input); err == nil {
			proofURL = input.ProofURL
		}
	}

	p, err := h.payments.SubmitProof(c.Context(), publicID, proofURL)
	if err != nil {
		return publicCheckoutError(c, err)
	}

	return response.Success(c, "Proof submitted", fiber.Map{
		"payment_id": p.PublicID,
		"status":     p.Status,
	})
}

// GetPayment lets the customer poll the status of their own payment by its
// opaque id.
func (h *PublicCheckoutHandler) GetPayment(c *fiber.Ctx) error {
	p, err := h.payments.GetByPublicID(c.Context(), c.Params("id"))
	if err != nil {
		return publicCheckoutError(c, err)
	}
	return response.Success(c, "Payment", fiber.Map{
		"payment_id": p.PublicID,
		"status":     p.Status,
		"amount":     p.Amount,
		"currency":   p.CurrencyCode,
	})
}

func publicCheckoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, checkout.ErrLinkNotFound), errors.Is(err, payment.ErrPaymentNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, checkout.ErrLinkInactive),
		errors.Is(err, checkout.ErrCountryNotSupported),
		errors.Is(err, checkout.ErrNoPaymentMethodAvailable),
		errors.Is(err, payment.ErrSubmissionInvalid),
		errors.Is(err, payment.ErrAmountOutOfRange),
		errors.Is(err, payment.ErrMethodNotEligible),
		errors.Is(err, payment.ErrProofRequired):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, payment.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	default:
		return response.ServerError(c, "Checkout operation failed")
	}
}
