package handlers

import (
	"errors"
	"strconv"

	"linkpay/internal/models"
	"linkpay/internal/services/method"
	"linkpay/internal/services/scope"
	"linkpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type MethodHandler struct {
	service method.Service
}

func NewMethodHandler(service method.Service) *MethodHandler {
	return &MethodHandler{service: service}
}

func (h *MethodHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	methods, err := h.service.List(c.Context(), claims)
	if err != nil {
		return response.ServerError(c, "Failed to list payment methods")
	}
	return response.Success(c, "Payment methods", methods)
}

func (h *MethodHandler) Get(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid method id")
	}

	m, err := h.service.Get(c.Context(), claims, uint(id))
	if err != nil {
		return methodError(c, err)
	}
	return response.Success(c, "Payment method", m)
}

func (h *MethodHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input method.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	m, err := h.service.Create(c.Context(), claims, input)
	if err != nil {
		return methodError(c, err)
	}
	return response.Created(c, "Payment method created", m)
}

func (h *MethodHandler) Update(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid method id")
	}

	var input method.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	m, err := h.service.Update(c.Context(), claims, uint(id), input)
	if err != nil {
		return methodError(c, err)
	}
	return response.Success(c, "Payment method updated", m)
}

func methodError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, method.ErrConfigurationInvalid):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, method.ErrMethodNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, scope.ErrForbidden):
		return response.Forbidden(c)
	default:
		return response.ServerError(c, "Payment method operation failed")
	}
}
