package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRenewalSettingsAreValid(t *testing.T) {
	require.NoError(t, DefaultRenewalSettings().Validate())
	require.NoError(t, DefaultAlertSettings().Validate())
}

func TestRenewalSettingsValidate(t *testing.T) {
	s := DefaultRenewalSettings()
	s.Pricing.RoundToNearest = 0
	assert.Error(t, s.Validate())

	s = DefaultRenewalSettings()
	s.DiscountTiers[PeriodKeyAnnual] = DiscountTier{Enabled: true, Percent: 120}
	assert.Error(t, s.Validate())

	s = DefaultRenewalSettings()
	s.Pricing.MinimumAmount = decimal.NewFromInt(1000)
	s.Pricing.MaximumAmount = decimal.NewFromInt(500)
	assert.Error(t, s.Validate())

	// Zero maximum means "no ceiling" and must not trip the min<=max check.
	s = DefaultRenewalSettings()
	s.Pricing.MinimumAmount = decimal.NewFromInt(1000)
	s.Pricing.MaximumAmount = decimal.Zero
	assert.NoError(t, s.Validate())
}

func TestValidationFailuresWrapSentinel(t *testing.T) {
	s := DefaultRenewalSettings()
	s.Pricing.RoundToNearest = 0
	assert.True(t, errors.Is(s.Validate(), ErrInvalidSettings))

	s = DefaultRenewalSettings()
	s.DiscountTiers[PeriodKeyAnnual] = DiscountTier{Enabled: true, Percent: 120}
	assert.True(t, errors.Is(s.Validate(), ErrInvalidSettings))

	a := DefaultAlertSettings()
	a.PreExpiry.ThresholdDays = -1
	assert.True(t, errors.Is(a.Validate(), ErrInvalidSettings))
}

func TestAlertSettingsValidate(t *testing.T) {
	s := DefaultAlertSettings()
	s.GracePeriod.ThresholdDays = -1
	assert.Error(t, s.Validate())
}

func TestServiceExpirationDate(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	svc := &Service{BillingCycle: "monthly", CycleStartDate: &start}

	got, err := svc.ExpirationDate()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), *got)

	// One-time services use the explicit expiration, if any.
	exp := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	oneTime := &Service{BillingCycle: "one_time", ExplicitExpirationDate: &exp}
	got, err = oneTime.ExpirationDate()
	require.NoError(t, err)
	assert.Equal(t, exp, *got)

	openEnded := &Service{BillingCycle: "one_time"}
	got, err = openEnded.ExpirationDate()
	require.NoError(t, err)
	assert.Nil(t, got)
}
