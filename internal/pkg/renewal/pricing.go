package renewal

import (
	"github.com/shopspring/decimal"

	"github.com/AndesHost/ServiPanel/app/models"
)

var oneHundred = decimal.NewFromInt(100)

// Quote is the priced outcome of a renewal for a given period.
type Quote struct {
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Savings         decimal.Decimal `json:"savings"`
	DiscountPercent float64         `json:"discount_percent"`
	TierLabel       string          `json:"tier_label,omitempty"`
}

// ComputeQuote prices a renewal: tier discount, half-up rounding to the
// configured step, minimum clamp, maximum check, then tax. The maximum is
// never applied by silently lowering the price; exceeding it is a
// configuration error surfaced to the caller.
func ComputeQuote(basePrice decimal.Decimal, period Period, cfg *models.RenewalSettings) (*Quote, error) {
	q := &Quote{BasePrice: basePrice}

	discounted := basePrice
	if tier, ok := cfg.Tier(string(period)); ok && tier.Enabled && tier.Percent > 0 {
		pct := decimal.NewFromFloat(tier.Percent)
		discounted = basePrice.Sub(basePrice.Mul(pct).Div(oneHundred))
		q.DiscountPercent = tier.Percent
		q.TierLabel = tier.Label
	}

	// Round half up to the nearest multiple of the step. Validation
	// guarantees the step is positive; step 1 rounds to whole units.
	stepDec := decimal.NewFromInt(cfg.Pricing.RoundToNearest)
	discounted = discounted.Div(stepDec).Round(0).Mul(stepDec)

	if discounted.LessThan(cfg.Pricing.MinimumAmount) {
		discounted = cfg.Pricing.MinimumAmount
	}
	if max := cfg.Pricing.MaximumAmount; max.IsPositive() && discounted.GreaterThan(max) {
		return nil, ErrAboveMaximum
	}

	q.DiscountedPrice = discounted
	q.Savings = basePrice.Sub(discounted)

	switch {
	case cfg.Tax.Enabled && !cfg.Tax.Inclusive:
		pct := decimal.NewFromFloat(cfg.Tax.Percent)
		q.TaxAmount = discounted.Mul(pct).Div(oneHundred).Round(2)
		q.FinalPrice = discounted.Add(q.TaxAmount)
	case cfg.Tax.Enabled && cfg.Tax.Inclusive:
		// Tax already contained in the price; report the contained portion.
		pct := decimal.NewFromFloat(cfg.Tax.Percent)
		net := discounted.Div(decimal.NewFromInt(1).Add(pct.Div(oneHundred)))
		q.TaxAmount = discounted.Sub(net).Round(2)
		q.FinalPrice = discounted
	default:
		q.TaxAmount = decimal.Zero
		q.FinalPrice = discounted
	}

	return q, nil
}
