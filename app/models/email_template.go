package models

import "time"

// Default template keys seeded by the migrations. Alert settings reference
// templates by key so operators can point phases at custom templates.
const (
	TemplateKeyPreExpiryClient   = "pre_expiry_client"
	TemplateKeyPreExpiryAdmin    = "pre_expiry_admin"
	TemplateKeyGracePeriodClient = "grace_period_client"
	TemplateKeyGracePeriodAdmin  = "grace_period_admin"
	TemplateKeyExpiredClient     = "expired_client"
	TemplateKeyExpiredAdmin      = "expired_admin"
)

// EmailTemplate holds a notification subject and body with {variable}
// placeholders filled in by the alerts package at send time.
type EmailTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"key" validate:"required"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Subject   string    `gorm:"type:varchar(255);not null" json:"subject" validate:"required"`
	Body      string    `gorm:"type:text;not null" json:"body" validate:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
