package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndesHost/ServiPanel/app/models"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEffectiveTerminalStatuses(t *testing.T) {
	for _, status := range []string{models.ServiceStatusPaid, models.ServiceStatusCancelled} {
		svc := &models.Service{
			Status:         status,
			BillingCycle:   "monthly",
			CycleStartDate: datePtr(2020, 1, 1), // long expired, must not matter
		}
		res := Effective(svc, now)
		assert.Equal(t, Status(status), res.Status)
		assert.False(t, res.DateUnavailable)
	}
}

func TestEffectiveGracePeriodExpired(t *testing.T) {
	svc := &models.Service{
		Status:         models.ServiceStatusPendingPayment,
		BillingCycle:   "monthly",
		CycleStartDate: datePtr(2024, 5, 1), // expired 2024-06-01
	}
	res := Effective(svc, now)
	assert.Equal(t, StatusGracePeriodExpired, res.Status)
	require.NotNil(t, res.ExpiresAt)
	assert.Equal(t, *datePtr(2024, 6, 1), *res.ExpiresAt)
}

func TestEffectivePendingNotYetExpired(t *testing.T) {
	svc := &models.Service{
		Status:         models.ServiceStatusPendingPayment,
		BillingCycle:   "monthly",
		CycleStartDate: datePtr(2024, 6, 1), // expires 2024-07-01
	}
	res := Effective(svc, now)
	assert.Equal(t, StatusPendingPayment, res.Status)
}

func TestEffectiveActiveStaysActivePastExpiry(t *testing.T) {
	// Grace derivation only applies to pending-payment services.
	svc := &models.Service{
		Status:         models.ServiceStatusActive,
		BillingCycle:   "monthly",
		CycleStartDate: datePtr(2024, 4, 1),
	}
	res := Effective(svc, now)
	assert.Equal(t, StatusActive, res.Status)
}

func TestEffectiveOneTimeExplicitExpiration(t *testing.T) {
	svc := &models.Service{
		Status:                 models.ServiceStatusPendingPayment,
		BillingCycle:           "one_time",
		ExplicitExpirationDate: datePtr(2024, 6, 9),
	}
	res := Effective(svc, now)
	assert.Equal(t, StatusGracePeriodExpired, res.Status)
}

func TestEffectiveOneTimeOpenEnded(t *testing.T) {
	svc := &models.Service{
		Status:       models.ServiceStatusActive,
		BillingCycle: "one_time",
	}
	res := Effective(svc, now)
	assert.Equal(t, StatusActive, res.Status)
	assert.False(t, res.DateUnavailable)
	assert.Nil(t, res.ExpiresAt)
}

func TestEffectiveFailSoftMissingCycleStart(t *testing.T) {
	svc := &models.Service{
		Status:       models.ServiceStatusPendingPayment,
		BillingCycle: "monthly",
	}
	res := Effective(svc, now)
	assert.Equal(t, StatusPendingPayment, res.Status)
	assert.True(t, res.DateUnavailable)
}

func TestEffectiveFailSoftUnparseableCustomCycle(t *testing.T) {
	svc := &models.Service{
		Status:          models.ServiceStatusPendingPayment,
		BillingCycle:    "custom",
		CustomCycleText: "whenever",
		CycleStartDate:  datePtr(2024, 1, 1),
	}
	res := Effective(svc, now)
	assert.Equal(t, StatusPendingPayment, res.Status)
	assert.True(t, res.DateUnavailable)
}

func TestIsLegalTransition(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusActive, StatusPendingPayment},
		{StatusPendingPayment, StatusPaid},
		{StatusPendingPayment, StatusCancelled},
		{StatusPaid, StatusActive},
		{StatusActive, StatusCancelled},
		{StatusPaid, StatusCancelled},
	}
	for _, tt := range legal {
		assert.True(t, IsLegalTransition(tt.from, tt.to), "%s -> %s should be legal", tt.from, tt.to)
	}

	illegal := []struct{ from, to Status }{
		{StatusActive, StatusPaid},
		{StatusPaid, StatusPendingPayment},
		{StatusCancelled, StatusActive},
		{StatusCancelled, StatusPaid},
		{StatusActive, StatusActive},
	}
	for _, tt := range illegal {
		assert.False(t, IsLegalTransition(tt.from, tt.to), "%s -> %s should be illegal", tt.from, tt.to)
	}
}
