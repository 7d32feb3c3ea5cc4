package notification

import (
	"linkpay/internal/models"
)

// Store is the persistence surface for notification rows.
type Store interface {
	Create(notification *models.Notification) error
	ListForUser(userID uint, limit, offset int) ([]models.Notification, error)
	MarkRead(id, userID uint) (bool, error)
	CountUnread(userID uint) (int64, error)
}

// UserDirectory looks up notification audiences.
type UserDirectory interface {
	ListSuperAdmins() ([]models.User, error)
}
