package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/app/repository"
)

// HandleGetRenewalSettings returns the active renewal pricing configuration
func HandleGetRenewalSettings(c *fiber.Ctx) error {
	settings, err := repository.GetGlobalRepositories().Setting.GetRenewalSettings()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load renewal settings")
	}
	return c.JSON(settings)
}

// HandleSaveRenewalSettings validates and persists renewal pricing settings
func HandleSaveRenewalSettings(c *fiber.Ctx) error {
	settings := models.DefaultRenewalSettings()
	if err := c.BodyParser(settings); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if err := repository.GetGlobalRepositories().Setting.SaveRenewalSettings(settings); err != nil {
		if errors.Is(err, models.ErrInvalidSettings) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save renewal settings")
	}

	return c.JSON(settings)
}

// HandleGetAlertSettings returns the active alert configuration
func HandleGetAlertSettings(c *fiber.Ctx) error {
	settings, err := repository.GetGlobalRepositories().Setting.GetAlertSettings()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load alert settings")
	}
	return c.JSON(settings)
}

// HandleSaveAlertSettings validates and persists alert configuration
func HandleSaveAlertSettings(c *fiber.Ctx) error {
	settings := models.DefaultAlertSettings()
	if err := c.BodyParser(settings); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if err := repository.GetGlobalRepositories().Setting.SaveAlertSettings(settings); err != nil {
		if errors.Is(err, models.ErrInvalidSettings) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save alert settings")
	}

	return c.JSON(settings)
}

// HandleListEmailTemplates returns all notification templates
func HandleListEmailTemplates(c *fiber.Ctx) error {
	templates, err := repository.GetGlobalRepositories().EmailTemplate.GetAll()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load templates")
	}
	return c.JSON(fiber.Map{"templates": templates})
}

// HandleGetEmailTemplate returns one template by key
func HandleGetEmailTemplate(c *fiber.Ctx) error {
	template, err := repository.GetGlobalRepositories().EmailTemplate.GetByKey(c.Params("key"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Template not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load template")
	}
	return c.JSON(template)
}

type emailTemplateRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// HandleSaveEmailTemplate creates or updates a template under the given key
func HandleSaveEmailTemplate(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Template key is required")
	}

	var req emailTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", msg)
	}

	template := &models.EmailTemplate{
		Key:     key,
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := repository.GetGlobalRepositories().EmailTemplate.Save(template); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save template")
	}

	return c.JSON(template)
}
