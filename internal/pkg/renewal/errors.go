package renewal

import "errors"

var (
	// ErrInvalidPeriod rejects renewal periods shorter than the current
	// cycle, or any renewal of a one-time service.
	ErrInvalidPeriod = errors.New("renewal period is not valid for this service")

	// ErrRenewalAlreadyPending rejects a second renewal request while one is
	// still awaiting payment. Callers should surface the existing intent.
	ErrRenewalAlreadyPending = errors.New("a pending renewal already exists for this service")

	// ErrAboveMaximum flags a configuration problem: the discounted price
	// exceeds the configured ceiling. Prices are never silently lowered.
	ErrAboveMaximum = errors.New("discounted price exceeds the configured maximum amount")

	// ErrDateUnavailable means the service's expiration could not be
	// computed, so new cycle dates cannot be derived.
	ErrDateUnavailable = errors.New("service expiration date is unavailable")

	// ErrIntentNotPending rejects confirmation or cancellation of an intent
	// that was already completed or cancelled.
	ErrIntentNotPending = errors.New("renewal intent is not pending")
)
