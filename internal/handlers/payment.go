package handlers

import (
	"errors"
	"strconv"

	"linkpay/internal/models"
	"linkpay/internal/services/payment"
	"linkpay/internal/services/scope"
	"linkpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler serves the merchant/admin payment review surface.
type PaymentHandler struct {
	service payment.Service
}

func NewPaymentHandler(service payment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	payments, total, err := h.service.List(c.Context(), claims, limit, offset)
	if err != nil {
		return response.ServerError(c, "Failed to list payments")
	}
	return response.Success(c, "Payments", fiber.Map{
		"payments": payments,
		"total":    total,
	})
}

func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	p, err := h.service.Get(c.Context(), claims, uint(id))
	if err != nil {
		return paymentError(c, err)
	}
	return response.Success(c, "Payment", p)
}

// UpdateStatus performs a verification state transition on behalf of the
// authenticated reviewer.
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	var input struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	p, err := h.service.Transition(c.Context(), claims, uint(id), input.Status, input.Notes)
	if err != nil {
		return paymentError(c, err)
	}
	return response.Success(c, "Payment updated", p)
}

func paymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, payment.ErrPaymentNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, payment.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, scope.ErrForbidden):
		return response.Forbidden(c)
	default:
		return response.ServerError(c, "Payment operation failed")
	}
}
