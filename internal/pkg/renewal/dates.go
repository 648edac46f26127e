package renewal

import (
	"time"

	"github.com/AndesHost/ServiPanel/app/models"
)

// CycleDates are the boundaries of the billing period a renewal purchases.
type CycleDates struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewCycleDates computes the cycle a renewal extends into. The new cycle
// starts at the service's current expiration date, never at "today":
// renewing early or late must not lose or gift paid-for time.
func NewCycleDates(svc *models.Service, p Period) (*CycleDates, error) {
	expiresAt, err := svc.ExpirationDate()
	if err != nil {
		return nil, ErrDateUnavailable
	}
	if expiresAt == nil {
		return nil, ErrDateUnavailable
	}
	return &CycleDates{
		Start: *expiresAt,
		End:   expiresAt.AddDate(0, p.Months(), 0),
	}, nil
}
