package renewal

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AndesHost/ServiPanel/app/models"
)

// IntentStore persists renewal intents. CreatePending must perform the
// no-pending-intent check and the insert as a single atomic operation
// (two admins renewing the same service concurrently is a real race) and
// return ErrRenewalAlreadyPending on conflict.
type IntentStore interface {
	FindPendingByServiceID(serviceID uint) (*models.RenewalIntent, error)
	CreatePending(intent *models.RenewalIntent) error
	GetByUUID(uuid string) (*models.RenewalIntent, error)
	MarkCancelled(uuid string) error
}

// ServiceDelta is the state change a confirmed renewal implies for the
// service row. The coordinator has no persistence authority; the caller
// applies the delta together with the intent completion in one transaction.
type ServiceDelta struct {
	ServiceID      uint      `json:"service_id"`
	CycleStartDate time.Time `json:"cycle_start_date"`
	ExpirationDate time.Time `json:"expiration_date"`
	// The purchased period becomes the service's billing cycle so the next
	// expiration derives from the new cycle start.
	BillingCycle    string `json:"billing_cycle"`
	CustomCycleText string `json:"custom_cycle_text,omitempty"`
	Status          string `json:"status"`
}

// Coordinator validates and creates renewal intents, enforcing at most one
// pending renewal per service.
type Coordinator struct {
	store IntentStore
}

// NewCoordinator creates a coordinator over an intent store.
func NewCoordinator(store IntentStore) *Coordinator {
	return &Coordinator{store: store}
}

// RequestRenewal validates the period, prices the renewal and creates a
// pending intent. It rejects with ErrInvalidPeriod or
// ErrRenewalAlreadyPending; configuration problems from pricing propagate.
func (c *Coordinator) RequestRenewal(svc *models.Service, period Period, cfg *models.RenewalSettings) (*models.RenewalIntent, error) {
	if !PeriodIsValidFor(svc, period) {
		return nil, ErrInvalidPeriod
	}

	existing, err := c.store.FindPendingByServiceID(svc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending renewals: %w", err)
	}
	if existing != nil {
		return nil, ErrRenewalAlreadyPending
	}

	quote, err := ComputeQuote(svc.Amount, period, cfg)
	if err != nil {
		return nil, err
	}
	dates, err := NewCycleDates(svc, period)
	if err != nil {
		return nil, err
	}

	intent := &models.RenewalIntent{
		UUID:            uuid.NewString(),
		ServiceID:       svc.ID,
		PeriodKey:       string(period),
		BasePrice:       quote.BasePrice,
		DiscountedPrice: quote.DiscountedPrice,
		TaxAmount:       quote.TaxAmount,
		FinalPrice:      quote.FinalPrice,
		Savings:         quote.Savings,
		Currency:        svc.Currency,
		NewCycleStart:   dates.Start,
		NewCycleEnd:     dates.End,
		Status:          models.RenewalIntentStatusPending,
	}

	// The store repeats the pending check inside its transaction; the check
	// above only provides an early, friendlier rejection.
	if err := c.store.CreatePending(intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// ConfirmRenewal resolves a pending intent into the state delta the caller
// must apply: advance the cycle start/expiration to the intent's computed
// dates and set the service active for the new cycle.
func (c *Coordinator) ConfirmRenewal(intentUUID string) (*models.RenewalIntent, *ServiceDelta, error) {
	intent, err := c.store.GetByUUID(intentUUID)
	if err != nil {
		return nil, nil, err
	}
	if !intent.IsPending() {
		return nil, nil, ErrIntentNotPending
	}

	cycle, customText := Period(intent.PeriodKey).Cycle()
	delta := &ServiceDelta{
		ServiceID:       intent.ServiceID,
		CycleStartDate:  intent.NewCycleStart,
		ExpirationDate:  intent.NewCycleEnd,
		BillingCycle:    string(cycle),
		CustomCycleText: customText,
		Status:          models.ServiceStatusActive,
	}
	return intent, delta, nil
}

// CancelRenewal voids a pending intent.
func (c *Coordinator) CancelRenewal(intentUUID string) error {
	intent, err := c.store.GetByUUID(intentUUID)
	if err != nil {
		return err
	}
	if !intent.IsPending() {
		return ErrIntentNotPending
	}
	return c.store.MarkCancelled(intent.UUID)
}
