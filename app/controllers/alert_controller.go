package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AndesHost/ServiPanel/app/repository"
	"github.com/AndesHost/ServiPanel/internal/pkg/alerts"
	"github.com/AndesHost/ServiPanel/internal/pkg/jobqueue"
)

// HandleTriggerAlertScan enqueues an immediate alert scan for all billable
// services, or for one service when ?service_id is given
func HandleTriggerAlertScan(c *fiber.Ctx) error {
	serviceID := uint(c.QueryInt("service_id", 0))

	job, err := jobqueue.GetManager().TriggerAlertScan(serviceID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to enqueue alert scan")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"job_id": job.ID,
		"status": string(job.Status),
	})
}

// HandlePreviewAlert evaluates a service's alert phase without sending
// anything. Useful for checking thresholds while tuning settings.
func HandlePreviewAlert(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	svc, errResp := loadService(c, id)
	if svc == nil {
		return errResp
	}

	cfg, err := repository.GetGlobalRepositories().Setting.GetAlertSettings()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load alert settings")
	}

	firing := alerts.Evaluate(svc, &svc.Client, cfg, time.Now())
	if firing == nil {
		return c.JSON(fiber.Map{"firing": false})
	}

	return c.JSON(fiber.Map{
		"firing":                true,
		"phase":                 string(firing.Phase),
		"expiration_date":       firing.ExpirationDate.Format(dateLayout),
		"days_until_expiration": firing.DaysUntilExpiration,
		"days_overdue":          firing.DaysOverdue,
		"variables":             firing.Vars,
	})
}

// HandleListNotifications returns a service's notification history
func HandleListNotifications(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service id")
	}

	entries, err := repository.GetGlobalRepositories().NotificationLog.ListByServiceID(id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load notifications")
	}

	return c.JSON(fiber.Map{"notifications": entries})
}
