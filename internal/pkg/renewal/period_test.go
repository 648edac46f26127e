package renewal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndesHost/ServiPanel/app/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func monthlyService() *models.Service {
	return &models.Service{
		ID:             1,
		BillingCycle:   "monthly",
		CycleStartDate: datePtr(2024, 1, 15),
		Currency:       models.CurrencyCOP,
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod(" Quarterly ")
	require.NoError(t, err)
	assert.Equal(t, PeriodQuarterly, p)

	_, err = ParsePeriod("fortnightly")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriodIsValidFor(t *testing.T) {
	svc := monthlyService()
	for _, p := range []Period{PeriodMonthly, PeriodQuarterly, PeriodSemiannual, PeriodAnnual, PeriodBiennial, PeriodTriennial} {
		assert.True(t, PeriodIsValidFor(svc, p), "period %s should be valid for monthly service", p)
	}

	annual := &models.Service{BillingCycle: "annual", CycleStartDate: datePtr(2024, 1, 1)}
	assert.False(t, PeriodIsValidFor(annual, PeriodMonthly))
	assert.False(t, PeriodIsValidFor(annual, PeriodSemiannual))
	assert.True(t, PeriodIsValidFor(annual, PeriodAnnual))
	assert.True(t, PeriodIsValidFor(annual, PeriodBiennial))
}

func TestPeriodIsValidForOneTime(t *testing.T) {
	svc := &models.Service{BillingCycle: "one_time", ExplicitExpirationDate: datePtr(2024, 12, 31)}
	for _, p := range []Period{PeriodMonthly, PeriodQuarterly, PeriodSemiannual, PeriodAnnual, PeriodBiennial, PeriodTriennial} {
		assert.False(t, PeriodIsValidFor(svc, p), "one-time services never renew")
	}
}

func TestPeriodIsValidForCustomCycle(t *testing.T) {
	svc := &models.Service{BillingCycle: "custom", CustomCycleText: "6 meses", CycleStartDate: datePtr(2024, 1, 1)}
	assert.False(t, PeriodIsValidFor(svc, PeriodQuarterly))
	assert.True(t, PeriodIsValidFor(svc, PeriodSemiannual))
	assert.True(t, PeriodIsValidFor(svc, PeriodAnnual))

	unparseable := &models.Service{BillingCycle: "custom", CustomCycleText: "???", CycleStartDate: datePtr(2024, 1, 1)}
	assert.False(t, PeriodIsValidFor(unparseable, PeriodAnnual))
}
