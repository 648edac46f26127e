package models

import "time"

// NotificationLog records which alert phase was last sent for a service.
// The alert scan uses it to avoid re-sending the same phase for the same
// expiration date on every pass; a renewal moves the expiration date and
// naturally re-arms the alerts.
type NotificationLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ServiceID      uint      `gorm:"not null;index:idx_notification_logs_dedupe,priority:1" json:"service_id"`
	Phase          string    `gorm:"type:varchar(20);not null;index:idx_notification_logs_dedupe,priority:2" json:"phase"`
	ExpirationDate time.Time `gorm:"type:date;not null;index:idx_notification_logs_dedupe,priority:3" json:"expiration_date"`
	Recipient      string    `gorm:"type:varchar(255);not null" json:"recipient"`
	SentAt         time.Time `gorm:"not null" json:"sent_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
