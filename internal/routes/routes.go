package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/billpe-backend/internal/handlers"
	"github.com/Ananth-NQI/billpe-backend/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, apiToken string, health *handlers.HealthHandler, whatsapp *handlers.WhatsAppHandler) {
	app.Get("/health", health.Check)

	// API routes
	api := app.Group("/api", middleware.ValidateAPIToken(apiToken))

	wa := api.Group("/workspaces/:workspaceId/whatsapp")
	wa.Get("/config", whatsapp.GetConfig)
	wa.Put("/config", whatsapp.SaveConfig)
	wa.Post("/preview", whatsapp.Preview)
	wa.Post("/bills", whatsapp.SendBill)
	wa.Get("/bills/:invoiceNumber/sent", whatsapp.WasSent)
	wa.Post("/test", whatsapp.SendTest)
	wa.Get("/status", whatsapp.Status)
	wa.Get("/history", whatsapp.History)
}
