package controllers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndesHost/ServiPanel/app/models"
)

func TestServiceRequestApply(t *testing.T) {
	t.Parallel()

	req := serviceRequest{
		ClientID:       7,
		Type:           "hosting",
		Description:    "Plan Emprendedor",
		Amount:         "100000",
		Currency:       "COP",
		BillingCycle:   "monthly",
		CycleStartDate: "2024-01-15",
	}

	var svc models.Service
	require.NoError(t, req.apply(&svc))

	assert.Equal(t, uint(7), svc.ClientID)
	assert.True(t, svc.Amount.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "monthly", svc.BillingCycle)
	require.NotNil(t, svc.CycleStartDate)
	assert.Equal(t, "2024-01-15", svc.CycleStartDate.Format(dateLayout))
	assert.Nil(t, svc.ExplicitExpirationDate)
}

func TestServiceRequestApplyRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  serviceRequest
	}{
		{"negative amount", serviceRequest{Amount: "-5", Currency: "USD", Type: "hosting", ClientID: 1}},
		{"non-decimal amount", serviceRequest{Amount: "abc", Currency: "USD", Type: "hosting", ClientID: 1}},
		{"unparseable custom cycle", serviceRequest{
			Amount: "10", Currency: "USD", Type: "hosting", ClientID: 1,
			BillingCycle: "custom", CustomCycleText: "pronto",
		}},
		{"bad date", serviceRequest{
			Amount: "10", Currency: "USD", Type: "hosting", ClientID: 1,
			CycleStartDate: "15/01/2024",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svc models.Service
			assert.Error(t, tt.req.apply(&svc))
		})
	}
}

func TestServiceViewDerivesGracePeriod(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	svc := &models.Service{
		ID:             1,
		Amount:         decimal.NewFromInt(50000),
		Currency:       "COP",
		BillingCycle:   "monthly",
		CycleStartDate: &start,
		Status:         models.ServiceStatusPendingPayment,
	}

	now := time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)
	view := serviceView(svc, now)

	assert.Equal(t, "grace_period_expired", view["effective_status"])
	assert.Equal(t, "2024-02-15", view["expiration_date"])
}

func TestValidateStructReportsField(t *testing.T) {
	t.Parallel()

	msg := validateStruct(&clientRequest{Name: "", Email: "not-an-email"})
	assert.NotEmpty(t, msg)

	msg = validateStruct(&clientRequest{Name: "Carlos", Email: "carlos@example.com"})
	assert.Empty(t, msg)
}
