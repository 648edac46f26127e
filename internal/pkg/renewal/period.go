package renewal

import (
	"strings"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/internal/pkg/billingcycle"
)

// Period is a renewal length a client can purchase. Period keys match the
// discount tier keys in the renewal settings.
type Period string

const (
	PeriodMonthly    Period = models.PeriodKeyMonthly
	PeriodQuarterly  Period = models.PeriodKeyQuarterly
	PeriodSemiannual Period = models.PeriodKeySemiannual
	PeriodAnnual     Period = models.PeriodKeyAnnual
	PeriodBiennial   Period = models.PeriodKeyBiennial
	PeriodTriennial  Period = models.PeriodKeyTriennial
)

// Months returns the calendar length of the period, or 0 for unknown keys.
func (p Period) Months() int {
	switch p {
	case PeriodMonthly:
		return 1
	case PeriodQuarterly:
		return 3
	case PeriodSemiannual:
		return 6
	case PeriodAnnual:
		return 12
	case PeriodBiennial:
		return 24
	case PeriodTriennial:
		return 36
	default:
		return 0
	}
}

// Cycle returns the billing cycle the service carries after a renewal for
// this period is confirmed. Quarterly has no dedicated cycle value and is
// stored as a structured custom cycle.
func (p Period) Cycle() (billingcycle.Cycle, string) {
	switch p {
	case PeriodMonthly:
		return billingcycle.CycleMonthly, ""
	case PeriodQuarterly:
		return billingcycle.CycleCustom, "3 months"
	case PeriodSemiannual:
		return billingcycle.CycleSemiannual, ""
	case PeriodAnnual:
		return billingcycle.CycleAnnual, ""
	case PeriodBiennial:
		return billingcycle.CycleBiennial, ""
	case PeriodTriennial:
		return billingcycle.CycleTriennial, ""
	default:
		return billingcycle.CycleMonthly, ""
	}
}

// ParsePeriod maps request input onto a known period key.
func ParsePeriod(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	if p.Months() == 0 {
		return "", ErrInvalidPeriod
	}
	return p, nil
}

// PeriodIsValidFor reports whether a service may be renewed for the given
// period. One-time services never renew (a repurchase is a new service),
// and a renewal must be at least as long as the current cycle.
func PeriodIsValidFor(svc *models.Service, p Period) bool {
	if !svc.Cycle().IsRecurring() {
		return false
	}
	months, err := svc.CycleMonths()
	if err != nil || months <= 0 {
		return false
	}
	return p.Months() >= months
}
