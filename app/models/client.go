package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a customer that services are billed to.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Email     string         `gorm:"type:varchar(255);not null;index" json:"email" validate:"required,email"`
	Company   string         `gorm:"type:varchar(255)" json:"company"`
	Phone     string         `gorm:"type:varchar(50)" json:"phone"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
