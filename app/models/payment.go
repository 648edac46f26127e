package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodTransfer = "transfer"
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodOther    = "other"
)

// Payment records a confirmed payment against a service. Renewal payments
// reference the intent that produced them.
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ServiceID uint            `gorm:"not null;index" json:"service_id"`
	Service   Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	IntentID  *uint           `gorm:"index" json:"intent_id,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency  string          `gorm:"type:varchar(3);not null" json:"currency"`
	Method    string          `gorm:"type:varchar(20);not null;default:'transfer'" json:"method"`
	Reference string          `gorm:"type:varchar(100)" json:"reference"`
	PaidAt    time.Time       `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
