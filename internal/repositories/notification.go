package repositories

import (
	"linkpay/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository provides access to in-app notifications.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListForUser(userID uint, limit, offset int) ([]models.Notification, error)
	// MarkRead flips the read flag; only the recipient may do so. It reports
	// false when no row matched the (id, recipient) pair.
	MarkRead(id, userID uint) (bool, error)
	CountUnread(userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) ListForUser(userID uint, limit, offset int) ([]models.Notification, error) {
	var rows []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Limit(limit).Offset(offset).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *notificationRepository) MarkRead(id, userID uint) (bool, error) {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
