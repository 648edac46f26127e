package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/app/repository"
	"github.com/AndesHost/ServiPanel/internal/pkg/renewal"
)

// renewalCoordinator builds a coordinator over the global intent repository
func renewalCoordinator() (*renewal.Coordinator, *repository.Repositories) {
	repos := repository.GetGlobalRepositories()
	return renewal.NewCoordinator(repos.RenewalIntent), repos
}

type renewalRequest struct {
	Period string `json:"period" validate:"required"`
}

// HandleQuoteRenewal prices a renewal without creating an intent
func HandleQuoteRenewal(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	period, errResp := parsePeriodQuery(c)
	if errResp != nil {
		return errResp
	}

	svc, errResp := loadService(c, id)
	if svc == nil {
		return errResp
	}
	if !renewal.PeriodIsValidFor(svc, period) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_period",
			"Period is shorter than the service's billing cycle or the service is not renewable")
	}

	cfg, err := repository.GetGlobalRepositories().Setting.GetRenewalSettings()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load renewal settings")
	}

	quote, err := renewal.ComputeQuote(svc.Amount, period, cfg)
	if err != nil {
		if errors.Is(err, renewal.ErrAboveMaximum) {
			return jsonError(c, fiber.StatusConflict, "above_maximum",
				"Discounted price exceeds the configured maximum; review pricing rules")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to compute quote")
	}

	dates, err := renewal.NewCycleDates(svc, period)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "date_unavailable",
			"Service expiration date is unavailable; set the cycle start date first")
	}

	return c.JSON(fiber.Map{
		"period":          string(period),
		"quote":           quote,
		"new_cycle_start": dates.Start.Format(dateLayout),
		"new_cycle_end":   dates.End.Format(dateLayout),
	})
}

// HandleRequestRenewal creates a pending renewal intent for a service
func HandleRequestRenewal(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	var req renewalRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	period, err := renewal.ParsePeriod(req.Period)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_period", "Unknown renewal period")
	}

	svc, errResp := loadService(c, id)
	if svc == nil {
		return errResp
	}

	coordinator, repos := renewalCoordinator()
	cfg, err := repos.Setting.GetRenewalSettings()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load renewal settings")
	}

	intent, err := coordinator.RequestRenewal(svc, period, cfg)
	if err != nil {
		switch {
		case errors.Is(err, renewal.ErrInvalidPeriod):
			return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_period",
				"Period is shorter than the service's billing cycle or the service is not renewable")
		case errors.Is(err, renewal.ErrRenewalAlreadyPending):
			return jsonError(c, fiber.StatusConflict, "renewal_already_pending",
				"A pending renewal already exists for this service")
		case errors.Is(err, renewal.ErrAboveMaximum):
			return jsonError(c, fiber.StatusConflict, "above_maximum",
				"Discounted price exceeds the configured maximum; review pricing rules")
		case errors.Is(err, renewal.ErrDateUnavailable):
			return jsonError(c, fiber.StatusUnprocessableEntity, "date_unavailable",
				"Service expiration date is unavailable; set the cycle start date first")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create renewal")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(intent)
}

type confirmRenewalRequest struct {
	Method    string `json:"method" validate:"omitempty,oneof=transfer cash card other"`
	Reference string `json:"reference"`
	PaidAt    string `json:"paid_at"`
}

// HandleConfirmRenewal confirms payment of a pending intent: the service
// cycle advances, the intent completes and a payment is recorded, all in one
// transaction.
func HandleConfirmRenewal(c *fiber.Ctx) error {
	intentUUID := c.Params("uuid")

	var req confirmRenewalRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", msg)
	}

	paidAt := time.Now()
	if req.PaidAt != "" {
		parsed, err := time.Parse(dateLayout, req.PaidAt)
		if err != nil {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", "paid_at must be YYYY-MM-DD")
		}
		paidAt = parsed
	}
	method := req.Method
	if method == "" {
		method = models.PaymentMethodTransfer
	}

	coordinator, repos := renewalCoordinator()
	intent, delta, err := coordinator.ConfirmRenewal(intentUUID)
	if err != nil {
		return renewalIntentError(c, err)
	}

	payment := &models.Payment{
		ServiceID: intent.ServiceID,
		Amount:    intent.FinalPrice,
		Currency:  intent.Currency,
		Method:    method,
		Reference: req.Reference,
		PaidAt:    paidAt,
	}
	err = repos.RenewalIntent.Complete(intent.UUID, repository.RenewalDelta{
		ServiceID:       delta.ServiceID,
		CycleStartDate:  delta.CycleStartDate,
		BillingCycle:    delta.BillingCycle,
		CustomCycleText: delta.CustomCycleText,
		Status:          delta.Status,
	}, payment)
	if err != nil {
		return renewalIntentError(c, err)
	}
	intent.Status = models.RenewalIntentStatusCompleted

	return c.JSON(fiber.Map{
		"intent":          intent,
		"payment":         payment,
		"new_cycle_start": delta.CycleStartDate.Format(dateLayout),
		"expiration_date": delta.ExpirationDate.Format(dateLayout),
	})
}

// HandleCancelRenewal voids a pending intent, freeing the service's renewal
// slot
func HandleCancelRenewal(c *fiber.Ctx) error {
	intentUUID := c.Params("uuid")

	coordinator, _ := renewalCoordinator()
	if err := coordinator.CancelRenewal(intentUUID); err != nil {
		return renewalIntentError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListRenewals returns a service's renewal history
func HandleListRenewals(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	intents, err := repository.GetGlobalRepositories().RenewalIntent.ListByServiceID(id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list renewals")
	}

	return c.JSON(fiber.Map{"intents": intents})
}

func renewalIntentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "Renewal intent not found")
	case errors.Is(err, renewal.ErrIntentNotPending):
		return jsonError(c, fiber.StatusConflict, "intent_not_pending",
			"Renewal intent was already completed or cancelled")
	default:
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Renewal operation failed")
	}
}

func parsePeriodQuery(c *fiber.Ctx) (renewal.Period, error) {
	period, err := renewal.ParsePeriod(c.Query("period", models.PeriodKeyMonthly))
	if err != nil {
		return "", jsonError(c, fiber.StatusUnprocessableEntity, "invalid_period", "Unknown renewal period")
	}
	return period, nil
}
