package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/AndesHost/ServiPanel/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Clients
	v1.Post("/clients", controllers.HandleCreateClient)
	v1.Get("/clients", controllers.HandleListClients)
	v1.Get("/clients/:id", controllers.HandleGetClient)
	v1.Put("/clients/:id", controllers.HandleUpdateClient)
	v1.Delete("/clients/:id", controllers.HandleDeleteClient)

	// Services
	v1.Post("/services", controllers.HandleCreateService)
	v1.Get("/services", controllers.HandleListServices)
	v1.Get("/services/:id", controllers.HandleGetService)
	v1.Put("/services/:id", controllers.HandleUpdateService)
	v1.Patch("/services/:id/status", controllers.HandleUpdateServiceStatus)
	v1.Delete("/services/:id", controllers.HandleDeleteService)

	// Renewals
	v1.Get("/services/:id/renewal-quote", controllers.HandleQuoteRenewal)
	v1.Post("/services/:id/renewals", controllers.HandleRequestRenewal)
	v1.Get("/services/:id/renewals", controllers.HandleListRenewals)
	v1.Post("/renewals/:uuid/confirm", controllers.HandleConfirmRenewal)
	v1.Post("/renewals/:uuid/cancel", controllers.HandleCancelRenewal)

	// Payments
	v1.Get("/payments", controllers.HandleListPayments)

	// Alerts
	v1.Post("/alerts/scan", controllers.HandleTriggerAlertScan)
	v1.Get("/services/:id/alert-preview", controllers.HandlePreviewAlert)
	v1.Get("/services/:id/notifications", controllers.HandleListNotifications)

	// Settings
	v1.Get("/settings/renewal", controllers.HandleGetRenewalSettings)
	v1.Put("/settings/renewal", controllers.HandleSaveRenewalSettings)
	v1.Get("/settings/alerts", controllers.HandleGetAlertSettings)
	v1.Put("/settings/alerts", controllers.HandleSaveAlertSettings)
	v1.Get("/settings/templates", controllers.HandleListEmailTemplates)
	v1.Get("/settings/templates/:key", controllers.HandleGetEmailTemplate)
	v1.Put("/settings/templates/:key", controllers.HandleSaveEmailTemplate)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
