package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/internal/pkg/billingcycle"
)

const (
	ServiceTypeHosting = "hosting"
	ServiceTypeDomain  = "domain"
	ServiceTypeOther   = "other"
)

const (
	CurrencyUSD = "USD"
	CurrencyCOP = "COP"
)

// Stored service statuses. The derived "grace period expired" status is
// computed by the lifecycle package and never persisted.
const (
	ServiceStatusActive         = "active"
	ServiceStatusPendingPayment = "pending_payment"
	ServiceStatusPaid           = "paid"
	ServiceStatusCancelled      = "cancelled"
)

// Service is a billable offering assigned to a client (hosting plan, domain).
type Service struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ClientID        uint            `gorm:"not null;index" json:"client_id"`
	Client          Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Type            string          `gorm:"type:varchar(20);not null;default:'hosting'" json:"type" validate:"oneof=hosting domain other"`
	Description     string          `gorm:"type:varchar(255)" json:"description"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency" validate:"oneof=USD COP"`
	BillingCycle    string          `gorm:"type:varchar(20);not null;default:'monthly'" json:"billing_cycle"`
	CustomCycleText string          `gorm:"type:varchar(50)" json:"custom_cycle_text,omitempty"`
	// CycleStartDate is the date the current billing period began. It advances
	// on confirmed renewal payment.
	CycleStartDate *time.Time `gorm:"type:date" json:"cycle_start_date,omitempty"`
	// ExplicitExpirationDate is only used for time-limited one-time services.
	ExplicitExpirationDate *time.Time     `gorm:"type:date" json:"explicit_expiration_date,omitempty"`
	Status                 string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt              time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

// Cycle returns the service's billing cycle as a typed value.
func (s *Service) Cycle() billingcycle.Cycle {
	return billingcycle.Normalize(s.BillingCycle)
}

// CycleMonths returns the calendar length of the service's billing cycle.
func (s *Service) CycleMonths() (int, error) {
	return billingcycle.Months(s.Cycle(), s.CustomCycleText)
}

// ExpirationDate returns the date the current cycle ends: the explicit
// expiration for one-time services, otherwise cycle start plus cycle length.
// Returns nil when no expiration can be computed (missing cycle start,
// unparseable custom cycle, open-ended one-time service).
func (s *Service) ExpirationDate() (*time.Time, error) {
	if s.Cycle() == billingcycle.CycleOneTime {
		return s.ExplicitExpirationDate, nil
	}
	if s.CycleStartDate == nil {
		return nil, nil
	}
	return billingcycle.EndDate(*s.CycleStartDate, s.Cycle(), s.CustomCycleText)
}
