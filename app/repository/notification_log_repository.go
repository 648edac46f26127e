package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
)

// notificationLogRepository implements the NotificationLogRepository interface
type notificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new notification log repository instance
func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

// Create records a sent notification
func (r *notificationLogRepository) Create(entry *models.NotificationLog) error {
	return r.db.Create(entry).Error
}

// WasSent reports whether the phase already fired for this service and
// expiration date. Truncating to the date keeps the dedupe stable across
// scan times.
func (r *notificationLogRepository) WasSent(serviceID uint, phase string, expirationDate time.Time) (bool, error) {
	day := expirationDate.UTC().Truncate(24 * time.Hour)
	var count int64
	err := r.db.Model(&models.NotificationLog{}).
		Where("service_id = ? AND phase = ? AND expiration_date = ?", serviceID, phase, day).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByServiceID returns a service's notification history, newest first
func (r *notificationLogRepository) ListByServiceID(serviceID uint) ([]models.NotificationLog, error) {
	var entries []models.NotificationLog
	err := r.db.Where("service_id = ?", serviceID).Order("sent_at DESC").Find(&entries).Error
	return entries, err
}
