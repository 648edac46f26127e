package renewal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndesHost/ServiPanel/app/models"
)

func TestNewCycleDatesExtendFromExpiry(t *testing.T) {
	svc := monthlyService() // cycle start 2024-01-15, expires 2024-02-15

	dates, err := NewCycleDates(svc, PeriodQuarterly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), dates.Start)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), dates.End)
}

func TestNewCycleDatesDoubleRenewalAdvancesBySum(t *testing.T) {
	svc := monthlyService() // expires 2024-02-15

	first, err := NewCycleDates(svc, PeriodQuarterly)
	require.NoError(t, err)

	// Apply the first renewal the way a confirmed payment would: the start
	// advances to the old expiration and the purchased period becomes the
	// billing cycle.
	svc.CycleStartDate = &first.Start
	cycle, text := PeriodQuarterly.Cycle()
	svc.BillingCycle = string(cycle)
	svc.CustomCycleText = text

	// Renewing twice in a row advances the expiration by the sum of both
	// periods from the original expiration, regardless of "today".
	second, err := NewCycleDates(svc, PeriodQuarterly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), second.Start)
	assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), second.End)
}

func TestNewCycleDatesUnavailableExpiration(t *testing.T) {
	svc := &models.Service{BillingCycle: "monthly"} // no cycle start
	_, err := NewCycleDates(svc, PeriodQuarterly)
	assert.ErrorIs(t, err, ErrDateUnavailable)
}
