package handlers

import (
	"errors"
	"strconv"

	"linkpay/internal/models"
	"linkpay/internal/services/notification"
	"linkpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	rows, err := h.service.List(c.Context(), claims, limit, offset)
	if err != nil {
		return response.ServerError(c, "Failed to list notifications")
	}
	return response.Success(c, "Notifications", rows)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	count, err := h.service.UnreadCount(c.Context(), claims)
	if err != nil {
		return response.ServerError(c, "Failed to count notifications")
	}
	return response.Success(c, "Unread count", fiber.Map{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	if err := h.service.MarkRead(c.Context(), claims, uint(id)); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "Failed to mark notification read")
	}
	return response.Success(c, "Notification marked read", nil)
}
