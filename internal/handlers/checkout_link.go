package handlers

import (
	"errors"
	"strconv"

	"linkpay/internal/models"
	"linkpay/internal/services/checkout"
	"linkpay/internal/services/scope"
	"linkpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CheckoutLinkHandler struct {
	service checkout.Service
}

func NewCheckoutLinkHandler(service checkout.Service) *CheckoutLinkHandler {
	return &CheckoutLinkHandler{service: service}
}

func (h *CheckoutLinkHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	links, err := h.service.List(c.Context(), claims)
	if err != nil {
		return response.ServerError(c, "Failed to list checkout links")
	}
	return response.Success(c, "Checkout links", links)
}

func (h *CheckoutLinkHandler) Get(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid link id")
	}

	link, err := h.service.Get(c.Context(), claims, uint(id))
	if err != nil {
		return linkError(c, err)
	}
	return response.Success(c, "Checkout link", link)
}

func (h *CheckoutLinkHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input checkout.CreateLinkInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	link, err := h.service.Create(c.Context(), claims, input)
	if err != nil {
		return linkError(c, err)
	}
	return response.Created(c, "Checkout link created", link)
}

func (h *CheckoutLinkHandler) Update(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid link id")
	}

	var input checkout.UpdateLinkInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	link, err := h.service.Update(c.Context(), claims, uint(id), input)
	if err != nil {
		return linkError(c, err)
	}
	return response.Success(c, "Checkout link updated", link)
}

func (h *CheckoutLinkHandler) Delete(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid link id")
	}

	if err := h.service.Delete(c.Context(), claims, uint(id)); err != nil {
		return linkError(c, err)
	}
	return response.Success(c, "Checkout link deleted", nil)
}

func linkError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, checkout.ErrConfigurationInvalid):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, checkout.ErrSlugTaken):
		return response.Conflict(c, err.Error())
	case errors.Is(err, checkout.ErrLinkInUse):
		return response.Conflict(c, err.Error())
	case errors.Is(err, checkout.ErrLinkNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, scope.ErrForbidden):
		return response.Forbidden(c)
	default:
		return response.ServerError(c, "Checkout link operation failed")
	}
}
