package alerts

import (
	"strconv"
	"time"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/internal/pkg/lifecycle"
)

// Phase names a notification window in a service's life.
type Phase string

const (
	PhasePreExpiry   Phase = "pre_expiry"
	PhaseGracePeriod Phase = "grace_period"
	PhaseExpired     Phase = "expired"
)

const dateLayout = "2006-01-02"

// Firing is a single applicable alert: the phase plus the variable bag the
// notification templates are rendered with.
type Firing struct {
	Phase               Phase
	ExpirationDate      time.Time
	DaysUntilExpiration int
	DaysOverdue         int
	Vars                map[string]string
}

// Evaluate decides which notification phase (if any) applies to a service
// right now. At most one phase applies per evaluation: the day ranges of
// pre-expiry (before the date), grace (within the grace window) and expired
// (past the grace window) do not overlap. The evaluation is stateless and
// idempotent; send deduplication is the scan worker's job.
func Evaluate(svc *models.Service, client *models.Client, cfg *models.AlertSettings, now time.Time) *Firing {
	res := lifecycle.Effective(svc, now)
	if res.ExpiresAt == nil {
		return nil
	}

	daysLeft := daysBetween(now, *res.ExpiresAt)

	switch res.Status {
	case lifecycle.StatusActive, lifecycle.StatusPendingPayment:
		if !cfg.PreExpiry.Enabled {
			return nil
		}
		if daysLeft <= 0 || daysLeft > cfg.PreExpiry.ThresholdDays {
			return nil
		}
		f := &Firing{
			Phase:               PhasePreExpiry,
			ExpirationDate:      *res.ExpiresAt,
			DaysUntilExpiration: daysLeft,
		}
		f.Vars = buildVars(svc, client, cfg, f)
		return f

	case lifecycle.StatusGracePeriodExpired:
		overdue := -daysLeft
		if overdue <= 0 {
			return nil
		}
		f := &Firing{
			ExpirationDate: *res.ExpiresAt,
			DaysOverdue:    overdue,
		}
		if overdue > cfg.GracePeriod.ThresholdDays {
			// Grace exhausted. The expired phase is gated only by its own
			// enabled flag, not by the grace phase's.
			if !cfg.Expired.Enabled {
				return nil
			}
			f.Phase = PhaseExpired
		} else {
			if !cfg.GracePeriod.Enabled {
				return nil
			}
			f.Phase = PhaseGracePeriod
		}
		f.Vars = buildVars(svc, client, cfg, f)
		return f
	}

	return nil
}

// daysBetween counts whole calendar days from now's date to the given date;
// negative when the date is in the past.
func daysBetween(now, date time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// buildVars assembles the fixed template variable contract. Aggregate
// admin-side fields (pending totals, client tenure) are computed and merged
// by the caller, not here.
func buildVars(svc *models.Service, client *models.Client, cfg *models.AlertSettings, f *Firing) map[string]string {
	vars := map[string]string{
		"serviceType":         svc.Type,
		"description":         svc.Description,
		"amount":              svc.Amount.StringFixed(2),
		"currency":            svc.Currency,
		"dueDate":             f.ExpirationDate.Format(dateLayout),
		"expirationDate":      f.ExpirationDate.Format(dateLayout),
		"daysUntilExpiration": strconv.Itoa(f.DaysUntilExpiration),
		"daysOverdue":         strconv.Itoa(f.DaysOverdue),
		"billingCycle":        svc.BillingCycle,
		"companyName":         cfg.CompanyName,
	}
	if client != nil {
		vars["clientName"] = client.Name
		vars["clientEmail"] = client.Email
	}
	return vars
}
