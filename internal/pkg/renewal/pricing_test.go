package renewal

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndesHost/ServiPanel/app/models"
)

func pricingConfig() *models.RenewalSettings {
	cfg := models.DefaultRenewalSettings()
	cfg.DiscountTiers = map[string]models.DiscountTier{
		models.PeriodKeyQuarterly: {Enabled: true, Percent: 5, Label: "Quarterly"},
		models.PeriodKeyAnnual:    {Enabled: true, Percent: 12, Label: "Annual"},
		models.PeriodKeyBiennial:  {Enabled: false, Percent: 50, Label: "Biennial"},
	}
	cfg.Tax = models.TaxSettings{Enabled: true, Percent: 19, Inclusive: false, Name: "IVA"}
	cfg.Pricing = models.PricingRules{
		RoundToNearest: 100,
		MinimumAmount:  decimal.Zero,
		MaximumAmount:  decimal.Zero,
	}
	return cfg
}

func TestComputeQuoteQuarterlyWithTax(t *testing.T) {
	// 100000 COP monthly hosting, 5% quarterly discount, 19% exclusive tax.
	q, err := ComputeQuote(decimal.NewFromInt(100000), PeriodQuarterly, pricingConfig())
	require.NoError(t, err)

	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(95000)), "discounted = %s", q.DiscountedPrice)
	assert.True(t, q.TaxAmount.Equal(decimal.NewFromInt(18050)), "tax = %s", q.TaxAmount)
	assert.True(t, q.FinalPrice.Equal(decimal.NewFromInt(113050)), "final = %s", q.FinalPrice)
	assert.True(t, q.Savings.Equal(decimal.NewFromInt(5000)), "savings = %s", q.Savings)
	assert.Equal(t, 5.0, q.DiscountPercent)
}

func TestComputeQuoteDisabledTier(t *testing.T) {
	q, err := ComputeQuote(decimal.NewFromInt(100000), PeriodBiennial, pricingConfig())
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(100000)))
	assert.True(t, q.Savings.Equal(decimal.Zero))
	assert.Equal(t, 0.0, q.DiscountPercent)
}

func TestComputeQuoteAbsentTier(t *testing.T) {
	q, err := ComputeQuote(decimal.NewFromInt(50000), PeriodTriennial, pricingConfig())
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(50000)))
}

func TestComputeQuoteRoundingHalfUp(t *testing.T) {
	cfg := pricingConfig()
	cfg.Tax.Enabled = false

	// 1050 - 5% = 997.5 -> /100 = 9.975 -> rounds to 10 -> 1000
	q, err := ComputeQuote(decimal.NewFromInt(1050), PeriodQuarterly, cfg)
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(1000)), "got %s", q.DiscountedPrice)

	// 1040 - 5% = 988 -> rounds down to 1000? 988/100 = 9.88 -> 10 -> 1000
	q, err = ComputeQuote(decimal.NewFromInt(1040), PeriodQuarterly, cfg)
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(1000)), "got %s", q.DiscountedPrice)

	// 990 - 5% = 940.5 -> 9.405 -> 9 -> 900
	q, err = ComputeQuote(decimal.NewFromInt(990), PeriodQuarterly, cfg)
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(900)), "got %s", q.DiscountedPrice)
}

func TestComputeQuoteRoundingStepOne(t *testing.T) {
	cfg := pricingConfig()
	cfg.Tax.Enabled = false
	cfg.Pricing.RoundToNearest = 1

	// 99.99 - 5% = 94.9905 -> rounds half up to 95, a whole unit.
	q, err := ComputeQuote(decimal.NewFromFloat(99.99), PeriodQuarterly, cfg)
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(95)), "got %s", q.DiscountedPrice)
	assert.True(t, q.DiscountedPrice.Mod(decimal.NewFromInt(1)).IsZero())

	// 9.99 - 5% = 9.4905 -> 9, not 9.49.
	q, err = ComputeQuote(decimal.NewFromFloat(9.99), PeriodQuarterly, cfg)
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(9)), "got %s", q.DiscountedPrice)
}

func TestComputeQuoteDefaultSettingsRoundToWholeUnits(t *testing.T) {
	// The stock configuration ships roundToNearest 1: fractional prices
	// must still land on whole units.
	cfg := models.DefaultRenewalSettings()
	cfg.DiscountTiers[models.PeriodKeyQuarterly] = models.DiscountTier{Enabled: true, Percent: 5, Label: "Trimestral"}

	q, err := ComputeQuote(decimal.NewFromFloat(19.99), PeriodQuarterly, cfg)
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Mod(decimal.NewFromInt(1)).IsZero(),
		"default step: %s is not a whole unit", q.DiscountedPrice)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(19)), "got %s", q.DiscountedPrice)
}

func TestComputeQuoteRoundedPriceIsMultipleOfStep(t *testing.T) {
	cfg := pricingConfig()
	step := decimal.NewFromInt(cfg.Pricing.RoundToNearest)
	for _, base := range []int64{999, 12345, 100000, 33333, 70} {
		q, err := ComputeQuote(decimal.NewFromInt(base), PeriodAnnual, cfg)
		require.NoError(t, err)
		assert.True(t, q.DiscountedPrice.Mod(step).IsZero(),
			"base %d: %s is not a multiple of %s", base, q.DiscountedPrice, step)
	}
}

func TestComputeQuoteMinimumClamp(t *testing.T) {
	cfg := pricingConfig()
	cfg.Tax.Enabled = false
	cfg.Pricing.MinimumAmount = decimal.NewFromInt(5000)

	q, err := ComputeQuote(decimal.NewFromInt(1000), PeriodQuarterly, cfg)
	require.NoError(t, err)
	assert.True(t, q.DiscountedPrice.Equal(decimal.NewFromInt(5000)))
	assert.True(t, q.DiscountedPrice.GreaterThanOrEqual(cfg.Pricing.MinimumAmount))
}

func TestComputeQuoteMaximumIsNotSilentlyClamped(t *testing.T) {
	cfg := pricingConfig()
	cfg.Pricing.MaximumAmount = decimal.NewFromInt(90000)

	_, err := ComputeQuote(decimal.NewFromInt(100000), PeriodQuarterly, cfg)
	assert.True(t, errors.Is(err, ErrAboveMaximum))
}

func TestComputeQuoteInclusiveTax(t *testing.T) {
	cfg := pricingConfig()
	cfg.Tax.Inclusive = true

	q, err := ComputeQuote(decimal.NewFromInt(100000), PeriodQuarterly, cfg)
	require.NoError(t, err)
	// Final price equals discounted price; tax is the contained portion.
	assert.True(t, q.FinalPrice.Equal(decimal.NewFromInt(95000)))
	assert.True(t, q.TaxAmount.Equal(decimal.NewFromFloat(15168.07)), "tax = %s", q.TaxAmount)
}

func TestComputeQuoteTaxDisabled(t *testing.T) {
	cfg := pricingConfig()
	cfg.Tax.Enabled = false

	q, err := ComputeQuote(decimal.NewFromInt(100000), PeriodQuarterly, cfg)
	require.NoError(t, err)
	assert.True(t, q.TaxAmount.IsZero())
	assert.True(t, q.FinalPrice.Equal(q.DiscountedPrice))
}
