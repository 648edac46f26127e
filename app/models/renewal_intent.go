package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RenewalIntentStatusPending   = "pending"
	RenewalIntentStatusCompleted = "completed"
	RenewalIntentStatusCancelled = "cancelled"
)

// RenewalIntent is a proposed extension of a service's billing cycle,
// awaiting payment confirmation. At most one pending intent may exist per
// service; the repository enforces this inside a transaction.
type RenewalIntent struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UUID            string          `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	ServiceID       uint            `gorm:"not null;index:idx_renewal_intents_service_status,priority:1" json:"service_id"`
	Service         Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	PeriodKey       string          `gorm:"type:varchar(20);not null" json:"period_key"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"base_price"`
	DiscountedPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"discounted_price"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"tax_amount"`
	FinalPrice      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"final_price"`
	Savings         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"savings"`
	Currency        string          `gorm:"type:varchar(3);not null" json:"currency"`
	NewCycleStart   time.Time       `gorm:"type:date;not null" json:"new_cycle_start"`
	NewCycleEnd     time.Time       `gorm:"type:date;not null" json:"new_cycle_end"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending';index:idx_renewal_intents_service_status,priority:2" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsPending reports whether the intent still awaits payment confirmation.
func (r *RenewalIntent) IsPending() bool {
	return r.Status == RenewalIntentStatusPending
}
