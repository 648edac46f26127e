package billingcycle

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cycle is the recurrence unit of a service's charges.
type Cycle string

const (
	CycleOneTime    Cycle = "one_time"
	CycleMonthly    Cycle = "monthly"
	CycleSemiannual Cycle = "semiannual"
	CycleAnnual     Cycle = "annual"
	CycleBiennial   Cycle = "biennial"
	CycleTriennial  Cycle = "triennial"
	CycleCustom     Cycle = "custom"
)

// ErrUnparseableCustomCycle is returned when a custom cycle text cannot be
// parsed. Callers degrade to "no expiration" instead of failing.
var ErrUnparseableCustomCycle = errors.New("custom billing cycle text could not be parsed")

var (
	// Legacy service records carry free-text custom cycles in Spanish or
	// English ("6 meses", "2 años", "1 year").
	customMonthsRe = regexp.MustCompile(`(?i)^\s*(\d+)\s*(?:mes(?:es)?|months?)\s*$`)
	customYearsRe  = regexp.MustCompile(`(?i)^\s*(\d+)\s*(?:a[ñn]os?|years?)\s*$`)
)

// ParseCustomCycle extracts a month count from free-text custom cycle input.
func ParseCustomCycle(text string) (int, error) {
	if m := customMonthsRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return 0, ErrUnparseableCustomCycle
		}
		return n, nil
	}
	if m := customYearsRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return 0, ErrUnparseableCustomCycle
		}
		return n * 12, nil
	}
	return 0, ErrUnparseableCustomCycle
}

// IsRecurring reports whether the cycle repeats. One-time services do not
// renew; they can only be repurchased as a new service cycle.
func (c Cycle) IsRecurring() bool {
	return c != CycleOneTime
}

// Normalize maps stored cycle values onto a known Cycle, defaulting to monthly.
func Normalize(raw string) Cycle {
	switch Cycle(strings.ToLower(strings.TrimSpace(raw))) {
	case CycleOneTime:
		return CycleOneTime
	case CycleSemiannual:
		return CycleSemiannual
	case CycleAnnual:
		return CycleAnnual
	case CycleBiennial:
		return CycleBiennial
	case CycleTriennial:
		return CycleTriennial
	case CycleCustom:
		return CycleCustom
	default:
		return CycleMonthly
	}
}

// Months returns the calendar length of a cycle in months. One-time services
// have no recurrence and return 0 with a nil error. customText is only
// consulted for CycleCustom.
func Months(cycle Cycle, customText string) (int, error) {
	switch cycle {
	case CycleOneTime:
		return 0, nil
	case CycleMonthly:
		return 1, nil
	case CycleSemiannual:
		return 6, nil
	case CycleAnnual:
		return 12, nil
	case CycleBiennial:
		return 24, nil
	case CycleTriennial:
		return 36, nil
	case CycleCustom:
		return ParseCustomCycle(customText)
	default:
		return 1, nil
	}
}

// EndDate computes the expiration date of the cycle that began at start.
// One-time cycles have no computed end (callers use the service's explicit
// expiration date instead) and return nil. Unparseable custom cycles return
// nil with ErrUnparseableCustomCycle.
//
// Month arithmetic uses time.Time.AddDate, which normalizes overflowing
// dates (Jan 31 + 1 month = Mar 2 or Mar 3). This is deterministic for a
// given start date and is relied on by renewal date continuity.
func EndDate(start time.Time, cycle Cycle, customText string) (*time.Time, error) {
	months, err := Months(cycle, customText)
	if err != nil {
		return nil, err
	}
	if months == 0 {
		return nil, nil
	}
	end := start.AddDate(0, months, 0)
	return &end, nil
}
