package renewal

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndesHost/ServiPanel/app/models"
)

// fakeIntentStore keeps intents in memory and mirrors the repository's
// conflict behavior.
type fakeIntentStore struct {
	intents map[string]*models.RenewalIntent
}

func newFakeIntentStore() *fakeIntentStore {
	return &fakeIntentStore{intents: make(map[string]*models.RenewalIntent)}
}

func (s *fakeIntentStore) FindPendingByServiceID(serviceID uint) (*models.RenewalIntent, error) {
	for _, intent := range s.intents {
		if intent.ServiceID == serviceID && intent.IsPending() {
			return intent, nil
		}
	}
	return nil, nil
}

func (s *fakeIntentStore) CreatePending(intent *models.RenewalIntent) error {
	if existing, _ := s.FindPendingByServiceID(intent.ServiceID); existing != nil {
		return ErrRenewalAlreadyPending
	}
	s.intents[intent.UUID] = intent
	return nil
}

func (s *fakeIntentStore) GetByUUID(uuid string) (*models.RenewalIntent, error) {
	intent, ok := s.intents[uuid]
	if !ok {
		return nil, errors.New("intent not found")
	}
	return intent, nil
}

func (s *fakeIntentStore) MarkCancelled(uuid string) error {
	intent, err := s.GetByUUID(uuid)
	if err != nil {
		return err
	}
	intent.Status = models.RenewalIntentStatusCancelled
	return nil
}

func quoteService() *models.Service {
	return &models.Service{
		ID:             42,
		BillingCycle:   "monthly",
		CycleStartDate: datePtr(2024, 1, 15),
		Amount:         decimal.NewFromInt(100000),
		Currency:       models.CurrencyCOP,
		Status:         models.ServiceStatusPendingPayment,
	}
}

func TestRequestRenewalCreatesPendingIntent(t *testing.T) {
	store := newFakeIntentStore()
	c := NewCoordinator(store)

	intent, err := c.RequestRenewal(quoteService(), PeriodQuarterly, pricingConfig())
	require.NoError(t, err)

	assert.NotEmpty(t, intent.UUID)
	assert.Equal(t, uint(42), intent.ServiceID)
	assert.Equal(t, string(PeriodQuarterly), intent.PeriodKey)
	assert.Equal(t, models.RenewalIntentStatusPending, intent.Status)
	assert.True(t, intent.DiscountedPrice.Equal(decimal.NewFromInt(95000)))
	assert.True(t, intent.FinalPrice.Equal(decimal.NewFromInt(113050)))
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), intent.NewCycleStart)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), intent.NewCycleEnd)
}

func TestRequestRenewalRejectsSecondPending(t *testing.T) {
	store := newFakeIntentStore()
	c := NewCoordinator(store)
	svc := quoteService()

	first, err := c.RequestRenewal(svc, PeriodQuarterly, pricingConfig())
	require.NoError(t, err)

	_, err = c.RequestRenewal(svc, PeriodAnnual, pricingConfig())
	assert.ErrorIs(t, err, ErrRenewalAlreadyPending)

	// Original intent unchanged.
	stored, err := store.GetByUUID(first.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.RenewalIntentStatusPending, stored.Status)
	assert.Equal(t, string(PeriodQuarterly), stored.PeriodKey)
}

func TestRequestRenewalRejectsOneTime(t *testing.T) {
	store := newFakeIntentStore()
	c := NewCoordinator(store)
	svc := &models.Service{
		ID:                     7,
		BillingCycle:           "one_time",
		ExplicitExpirationDate: datePtr(2024, 12, 31),
		Amount:                 decimal.NewFromInt(50000),
	}

	for _, p := range []Period{PeriodMonthly, PeriodQuarterly, PeriodAnnual} {
		_, err := c.RequestRenewal(svc, p, pricingConfig())
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	}
}

func TestRequestRenewalRejectsShorterPeriod(t *testing.T) {
	store := newFakeIntentStore()
	c := NewCoordinator(store)
	svc := quoteService()
	svc.BillingCycle = "annual"

	_, err := c.RequestRenewal(svc, PeriodQuarterly, pricingConfig())
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestConfirmRenewalReturnsDelta(t *testing.T) {
	store := newFakeIntentStore()
	c := NewCoordinator(store)

	intent, err := c.RequestRenewal(quoteService(), PeriodQuarterly, pricingConfig())
	require.NoError(t, err)

	confirmed, delta, err := c.ConfirmRenewal(intent.UUID)
	require.NoError(t, err)
	assert.Equal(t, intent.UUID, confirmed.UUID)
	assert.Equal(t, uint(42), delta.ServiceID)
	assert.Equal(t, intent.NewCycleStart, delta.CycleStartDate)
	assert.Equal(t, intent.NewCycleEnd, delta.ExpirationDate)
	assert.Equal(t, models.ServiceStatusActive, delta.Status)
	assert.Equal(t, "custom", delta.BillingCycle)
	assert.Equal(t, "3 months", delta.CustomCycleText)
}

func TestConfirmRenewalRejectsNonPending(t *testing.T) {
	store := newFakeIntentStore()
	c := NewCoordinator(store)

	intent, err := c.RequestRenewal(quoteService(), PeriodQuarterly, pricingConfig())
	require.NoError(t, err)
	require.NoError(t, c.CancelRenewal(intent.UUID))

	_, _, err = c.ConfirmRenewal(intent.UUID)
	assert.ErrorIs(t, err, ErrIntentNotPending)

	err = c.CancelRenewal(intent.UUID)
	assert.ErrorIs(t, err, ErrIntentNotPending)
}

func TestCancelThenRequestAgain(t *testing.T) {
	store := newFakeIntentStore()
	c := NewCoordinator(store)
	svc := quoteService()

	intent, err := c.RequestRenewal(svc, PeriodQuarterly, pricingConfig())
	require.NoError(t, err)
	require.NoError(t, c.CancelRenewal(intent.UUID))

	// Cancelling frees the pending slot.
	_, err = c.RequestRenewal(svc, PeriodAnnual, pricingConfig())
	assert.NoError(t, err)
}
