package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/app/repository"
)

type clientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// HandleCreateClient creates a new client
func HandleCreateClient(c *fiber.Ctx) error {
	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", msg)
	}

	client := &models.Client{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Notes:   req.Notes,
	}
	repo := repository.GetGlobalFactory().GetClientRepository()
	if err := repo.Create(client); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create client")
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

// HandleGetClient returns a client with their services
func HandleGetClient(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid client id")
	}

	repos := repository.GetGlobalRepositories()
	client, err := repos.Client.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Client not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load client")
	}

	services, err := repos.Service.GetByClientID(id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load services")
	}

	return c.JSON(fiber.Map{
		"client":   client,
		"services": services,
	})
}

// HandleUpdateClient updates an existing client
func HandleUpdateClient(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid client id")
	}

	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_error", msg)
	}

	repo := repository.GetGlobalFactory().GetClientRepository()
	client, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Client not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load client")
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Company = req.Company
	client.Phone = req.Phone
	client.Notes = req.Notes
	if err := repo.Update(client); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update client")
	}

	return c.JSON(client)
}

// HandleDeleteClient soft-deletes a client
func HandleDeleteClient(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid client id")
	}

	repo := repository.GetGlobalFactory().GetClientRepository()
	if err := repo.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete client")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListClients returns clients with pagination or a search result
func HandleListClients(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetClientRepository()

	if query := c.Query("q"); query != "" {
		clients, err := repo.Search(query)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Search failed")
		}
		return c.JSON(fiber.Map{"clients": clients})
	}

	offset, limit := parsePagination(c)
	clients, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list clients")
	}
	total, err := repo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count clients")
	}

	return c.JSON(fiber.Map{
		"clients": clients,
		"total":   total,
	})
}
