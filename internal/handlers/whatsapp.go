package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/billpe-backend/internal/middleware"
	"github.com/Ananth-NQI/billpe-backend/internal/models"
	"github.com/Ananth-NQI/billpe-backend/internal/services"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

const maskedAPIKey = "********"

// WhatsAppHandler exposes bill dispatch to the dashboard
type WhatsAppHandler struct {
	store   storage.Store
	gateway *services.GatewayClient
	sentLog *services.SentLog
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(store storage.Store, gateway *services.GatewayClient, sentLog *services.SentLog) *WhatsAppHandler {
	return &WhatsAppHandler{
		store:   store,
		gateway: gateway,
		sentLog: sentLog,
	}
}

// TestMessageRequest is the body of POST /whatsapp/test
type TestMessageRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// GetConfig returns the workspace config with the API key masked
func (h *WhatsAppHandler) GetConfig(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")

	cfg, err := storage.GetConfig(h.store, workspaceID)
	if storage.IsNotFound(err) || storage.IsCorrupt(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "WhatsApp is not configured for this workspace",
		})
	}
	if err != nil {
		return failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"config":  cfg.Masked(),
	})
}

// SaveConfig stores the workspace config. A masked API key keeps the stored one.
func (h *WhatsAppHandler) SaveConfig(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")

	var cfg models.WhatsAppConfig
	if err := c.BodyParser(&cfg); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	cfg.SessionName = strings.TrimSpace(cfg.SessionName)
	if cfg.Enabled && (cfg.APIURL == "" || cfg.SessionName == "") {
		return badRequest(c, "API URL and session name are required when WhatsApp is enabled")
	}

	if cfg.APIKey == maskedAPIKey {
		cfg.APIKey = ""
		if existing, err := storage.GetConfig(h.store, workspaceID); err == nil {
			cfg.APIKey = existing.APIKey
		}
	}

	if err := storage.SaveConfig(h.store, workspaceID, &cfg); err != nil {
		return failure(c, err)
	}

	log.Printf("✅ WhatsApp config saved for workspace %s (enabled=%v)", workspaceID, cfg.Enabled)
	return c.JSON(fiber.Map{
		"success": true,
		"config":  cfg.Masked(),
	})
}

// Preview renders a bill with the workspace template without sending it
func (h *WhatsAppHandler) Preview(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")

	var bill models.BillData
	if err := c.BodyParser(&bill); err != nil {
		return badRequest(c, "Invalid bill payload")
	}

	cfg, err := storage.GetConfig(h.store, workspaceID)
	if err != nil {
		cfg = &models.WhatsAppConfig{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": h.gateway.RenderBill(cfg, &bill),
	})
}

// SendBill sends a bill to the customer. Bills already in the sent log are
// refused with 409 unless ?force=true.
func (h *WhatsAppHandler) SendBill(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")

	var bill models.BillData
	if err := c.BodyParser(&bill); err != nil {
		return badRequest(c, "Invalid bill payload")
	}
	if bill.InvoiceNumber == "" {
		return badRequest(c, "Invoice number is required")
	}

	if !c.QueryBool("force") && h.sentLog.WasSent(bill.InvoiceNumber, workspaceID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Bill " + bill.InvoiceNumber + " was already sent",
		})
	}

	log.Printf("📤 [%s] Sending bill %s for workspace %s", middleware.GetRequestID(c), bill.InvoiceNumber, workspaceID)
	result, err := h.gateway.SendBill(&bill, workspaceID)
	if err != nil {
		return failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Bill sent on WhatsApp",
		"messageId": result.MessageID,
		"chatId":    result.ChatID,
	})
}

// SendTest sends the canned test message to a phone number
func (h *WhatsAppHandler) SendTest(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")

	var req TestMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.gateway.SendTestMessage(req.PhoneNumber, workspaceID)
	if err != nil {
		return failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Test message sent",
		"messageId": result.MessageID,
	})
}

// Status reports whether the workspace's gateway session is connected
func (h *WhatsAppHandler) Status(c *fiber.Ctx) error {
	status := h.gateway.CheckConnection(c.Params("workspaceId"))
	return c.JSON(fiber.Map{
		"success":   status.Connected,
		"connected": status.Connected,
		"status":    status.Status,
		"message":   status.Message,
	})
}

// History lists sent bills, oldest first
func (h *WhatsAppHandler) History(c *fiber.Ctx) error {
	records := h.sentLog.History(c.Params("workspaceId"))
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(records),
		"records": records,
	})
}

// WasSent reports whether an invoice is in the sent log
func (h *WhatsAppHandler) WasSent(c *fiber.Ctx) error {
	invoiceNumber := c.Params("invoiceNumber")
	return c.JSON(fiber.Map{
		"invoiceNumber": invoiceNumber,
		"sent":          h.sentLog.WasSent(invoiceNumber, c.Params("workspaceId")),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// failure turns a service error into the uniform {success:false} body
func failure(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrConfigurationMissing):
		code = fiber.StatusPreconditionFailed
	case errors.Is(err, services.ErrValidation):
		code = fiber.StatusBadRequest
	case errors.Is(err, services.ErrGatewaySend):
		code = fiber.StatusBadGateway
	case errors.Is(err, services.ErrNetwork):
		code = fiber.StatusGatewayTimeout
	default:
		log.Printf("❌ [%s] Unexpected error: %v", middleware.GetRequestID(c), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
