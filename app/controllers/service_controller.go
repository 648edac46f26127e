package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/app/repository"
	"github.com/AndesHost/ServiPanel/internal/pkg/billingcycle"
	"github.com/AndesHost/ServiPanel/internal/pkg/lifecycle"
)

const dateLayout = "2006-01-02"

type serviceRequest struct {
	ClientID               uint   `json:"client_id" validate:"required"`
	Type                   string `json:"type" validate:"required,oneof=hosting domain other"`
	Description            string `json:"description"`
	Amount                 string `json:"amount" validate:"required"`
	Currency               string `json:"currency" validate:"required,oneof=USD COP"`
	BillingCycle           string `json:"billing_cycle"`
	CustomCycleText        string `json:"custom_cycle_text"`
	CycleStartDate         string `json:"cycle_start_date"`
	ExplicitExpirationDate string `json:"explicit_expiration_date"`
}

func (req *serviceRequest) apply(svc *models.Service) error {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return errors.New("amount must be a non-negative decimal")
	}

	cycle := billingcycle.Normalize(req.BillingCycle)
	if cycle == billingcycle.CycleCustom {
		if _, err := billingcycle.ParseCustomCycle(req.CustomCycleText); err != nil {
			return errors.New("custom cycle text is not recognized")
		}
	}

	svc.ClientID = req.ClientID
	svc.Type = req.Type
	svc.Description = req.Description
	svc.Amount = amount
	svc.Currency = req.Currency
	svc.BillingCycle = string(cycle)
	svc.CustomCycleText = req.CustomCycleText

	if req.CycleStartDate != "" {
		start, err := time.Parse(dateLayout, req.CycleStartDate)
		if err != nil {
			return errors.New("cycle_start_date must be YYYY-MM-DD")
		}
		svc.CycleStartDate = &start
	} else {
		svc.CycleStartDate = nil
	}

	if req.ExplicitExpirationDate != "" {
		exp, err := time.Parse(dateLayout, req.ExplicitExpirationDate)
		if err != nil {
			return errors.New("explicit_expiration_date must be YYYY-MM-DD")
		}
		svc.ExplicitExpirationDate = &exp
	} else {
		svc.ExplicitExpirationDate = nil
	}
	return nil
}

// HandleCreateService creates a new service for a client
func HandleCreateService(c *fiber.Ctx) error {
	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", msg)
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Client.GetByID(req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Client not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load client")
	}

	svc := &models.Service{Status: models.ServiceStatusActive}
	if err := req.apply(svc); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", err.Error())
	}

	if err := repos.Service.Create(svc); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create service")
	}

	return c.Status(fiber.StatusCreated).JSON(svc)
}

// HandleGetService returns a service with its derived lifecycle status
func HandleGetService(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	svc, err := loadService(c, id)
	if svc == nil {
		return err
	}

	return c.JSON(serviceView(svc, time.Now()))
}

// HandleUpdateService updates a service's billing fields
func HandleUpdateService(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", msg)
	}

	svc, errResp := loadService(c, id)
	if svc == nil {
		return errResp
	}
	if err := req.apply(svc); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", err.Error())
	}

	if err := repository.GetGlobalRepositories().Service.Update(svc); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update service")
	}

	return c.JSON(svc)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending_payment paid cancelled"`
}

// HandleUpdateServiceStatus changes the stored status, enforcing the legal
// transition graph
func HandleUpdateServiceStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", msg)
	}

	svc, errResp := loadService(c, id)
	if svc == nil {
		return errResp
	}

	from := lifecycle.Status(svc.Status)
	to := lifecycle.Status(req.Status)
	if !lifecycle.IsLegalTransition(from, to) {
		return jsonError(c, fiber.StatusConflict, "illegal_transition",
			"Cannot move service from "+svc.Status+" to "+req.Status)
	}

	if err := repository.GetGlobalRepositories().Service.UpdateStatus(id, req.Status); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update status")
	}
	svc.Status = req.Status

	return c.JSON(serviceView(svc, time.Now()))
}

// HandleDeleteService soft-deletes a service
func HandleDeleteService(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	if err := repository.GetGlobalRepositories().Service.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete service")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListServices returns services with their derived statuses
func HandleListServices(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)

	repos := repository.GetGlobalRepositories()
	services, err := repos.Service.ListWithClients(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list services")
	}
	total, err := repos.Service.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count services")
	}

	now := time.Now()
	views := make([]fiber.Map, 0, len(services))
	for i := range services {
		views = append(views, serviceView(&services[i], now))
	}

	return c.JSON(fiber.Map{
		"services": views,
		"total":    total,
	})
}

func loadService(c *fiber.Ctx, id uint) (*models.Service, error) {
	svc, err := repository.GetGlobalRepositories().Service.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "not_found", "Service not found")
		}
		return nil, jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load service")
	}
	return svc, nil
}

// serviceView decorates a service with its derived lifecycle state
func serviceView(svc *models.Service, now time.Time) fiber.Map {
	result := lifecycle.Effective(svc, now)

	view := fiber.Map{
		"service":          svc,
		"effective_status": string(result.Status),
	}
	if result.ExpiresAt != nil {
		view["expiration_date"] = result.ExpiresAt.Format(dateLayout)
	}
	if result.DateUnavailable {
		view["date_unavailable"] = true
	}
	return view
}
