package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff member operating the panel. Alert settings can single out
// users as additional recipients for admin-facing notifications.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Email     string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email" validate:"required,email"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
