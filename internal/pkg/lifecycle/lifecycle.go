package lifecycle

import (
	"time"

	"github.com/AndesHost/ServiPanel/app/models"
)

// Status is the effective service status as computed right now. It may
// differ from the stored status an operator last set: a pending-payment
// service whose expiration has passed is reported as grace-period-expired
// without that value ever being written back.
type Status string

const (
	StatusActive             Status = Status(models.ServiceStatusActive)
	StatusPendingPayment     Status = Status(models.ServiceStatusPendingPayment)
	StatusPaid               Status = Status(models.ServiceStatusPaid)
	StatusCancelled          Status = Status(models.ServiceStatusCancelled)
	StatusGracePeriodExpired Status = "grace_period_expired"
)

// Result is the outcome of an effective-status evaluation.
type Result struct {
	Status    Status
	ExpiresAt *time.Time
	// DateUnavailable is set when the expiration could not be computed
	// (missing cycle start or unparseable custom cycle). The status falls
	// back to the stored value so callers can still render something.
	DateUnavailable bool
}

// Effective derives the service's status at the given time. It never fails:
// date problems degrade to the stored status with DateUnavailable set.
func Effective(svc *models.Service, now time.Time) Result {
	stored := Status(svc.Status)

	// Paid and cancelled are terminal for display purposes. A fresh renewal
	// intent starts a new cycle rather than reopening the old one.
	if stored == StatusPaid || stored == StatusCancelled {
		expiresAt, _ := svc.ExpirationDate()
		return Result{Status: stored, ExpiresAt: expiresAt}
	}

	expiresAt, err := svc.ExpirationDate()
	if err != nil {
		return Result{Status: stored, DateUnavailable: true}
	}
	if expiresAt == nil {
		// Open-ended one-time services never expire; cyclic services without
		// a cycle start cannot be evaluated.
		if svc.Cycle().IsRecurring() && svc.CycleStartDate == nil {
			return Result{Status: stored, DateUnavailable: true}
		}
		return Result{Status: stored}
	}

	if stored == StatusPendingPayment && expiresAt.Before(now) {
		return Result{Status: StatusGracePeriodExpired, ExpiresAt: expiresAt}
	}
	return Result{Status: stored, ExpiresAt: expiresAt}
}

// transition is a stored-status edge an operator or payment flow may take.
type transition struct {
	From Status
	To   Status
}

var legalTransitions = map[transition]bool{
	{StatusActive, StatusPendingPayment}: true, // cycle approaching or past its end
	{StatusPendingPayment, StatusPaid}:   true, // payment confirmed
	{StatusPaid, StatusActive}:           true, // new cycle begins
}

// IsLegalTransition reports whether a stored-status change is allowed. The
// engine has no persistence authority; callers validate before writing.
func IsLegalTransition(from, to Status) bool {
	if to == StatusCancelled {
		// Operators can always cancel.
		return true
	}
	return legalTransitions[transition{from, to}]
}
