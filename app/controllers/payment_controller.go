package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AndesHost/ServiPanel/app/repository"
)

// HandleListPayments returns payments, optionally filtered by service
func HandleListPayments(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPaymentRepository()

	if serviceID := uint(c.QueryInt("service_id", 0)); serviceID > 0 {
		payments, err := repo.ListByServiceID(serviceID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list payments")
		}
		return c.JSON(fiber.Map{"payments": payments})
	}

	offset, limit := parsePagination(c)
	payments, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list payments")
	}
	total, err := repo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count payments")
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"total":    total,
	})
}
