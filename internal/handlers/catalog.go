package handlers

import (
	"errors"
	"strconv"

	"linkpay/internal/models"
	"linkpay/internal/services/catalog"
	"linkpay/internal/services/scope"
	"linkpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListCountries returns the global catalog merged with the caller's
// overrides.
func (h *CatalogHandler) ListCountries(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	countries, err := h.service.ListCountries(c.Context(), claims)
	if err != nil {
		return response.ServerError(c, "Failed to list countries")
	}
	return response.Success(c, "Countries", countries)
}

func (h *CatalogHandler) ListCurrencies(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	currencies, err := h.service.ListCurrencies(c.Context(), claims)
	if err != nil {
		return response.ServerError(c, "Failed to list currencies")
	}
	return response.Success(c, "Currencies", currencies)
}

func (h *CatalogHandler) CreateCountry(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input catalog.CountryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	country, err := h.service.CreateCountry(c.Context(), claims, input)
	if err != nil {
		return catalogError(c, err)
	}
	return response.Created(c, "Country created", country)
}

func (h *CatalogHandler) CreateCurrency(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input catalog.CurrencyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	currency, err := h.service.CreateCurrency(c.Context(), claims, input)
	if err != nil {
		return catalogError(c, err)
	}
	return response.Created(c, "Currency created", currency)
}

func (h *CatalogHandler) UpdateCountryStatus(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid country id")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	country, err := h.service.UpdateCountryStatus(c.Context(), claims, uint(id), input.Status)
	if err != nil {
		return catalogError(c, err)
	}
	return response.Success(c, "Country updated", country)
}

func catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrConfigurationInvalid), errors.Is(err, catalog.ErrCurrencyUnknown):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, catalog.ErrEntryNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, scope.ErrForbidden):
		return response.Forbidden(c)
	default:
		return response.ServerError(c, "Catalog operation failed")
	}
}
