package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/billpe-backend/internal/models"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

// TestMessageText is the canned body sent by SendTestMessage
const TestMessageText = "✅ *BillPe test message*\n\nYour WhatsApp integration is working. Bills will be delivered from this number."

// Session statuses that count as connected
var connectedStatuses = map[string]bool{
	"WORKING": true,
	"ACTIVE":  true,
}

// GatewayOptions holds process-wide gateway settings
type GatewayOptions struct {
	Timeout     time.Duration // Zero means no timeout
	CountryCode string
}

// GatewayClient talks to a WhatsApp session gateway (WAHA-style HTTP API)
type GatewayClient struct {
	store       storage.Store
	sentLog     *SentLog
	formatter   *Formatter
	timeout     time.Duration
	countryCode string
	now         func() time.Time
}

// SendResult describes a message accepted by the gateway
type SendResult struct {
	MessageID string `json:"messageId"`
	ChatID    string `json:"chatId"`
}

// ConnectionStatus is the outcome of a session check. Failures are reported
// here with Connected=false instead of as errors.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message"`
}

type sendTextRequest struct {
	Session string `json:"session"`
	ChatID  string `json:"chatId"`
	Text    string `json:"text"`
}

type sendTextResponse struct {
	ID        json.RawMessage `json:"id"`
	MessageID string          `json:"messageId"`
}

type sessionResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// NewGatewayClient creates a gateway client
func NewGatewayClient(store storage.Store, sentLog *SentLog, formatter *Formatter, opts GatewayOptions) *GatewayClient {
	if opts.CountryCode == "" {
		opts.CountryCode = DefaultCountryCode
	}
	return &GatewayClient{
		store:       store,
		sentLog:     sentLog,
		formatter:   formatter,
		timeout:     opts.Timeout,
		countryCode: opts.CountryCode,
		now:         time.Now,
	}
}

// LoadConfig returns the enabled config of a workspace. Missing, corrupt
// and disabled configs are all ErrConfigurationMissing.
func (g *GatewayClient) LoadConfig(workspaceID string) (*models.WhatsAppConfig, error) {
	cfg, err := storage.GetConfig(g.store, workspaceID)
	if err != nil {
		if storage.IsCorrupt(err) {
			log.Printf("⚠️  Corrupt WhatsApp config for workspace %s: %v", workspaceID, err)
		} else if !storage.IsNotFound(err) {
			log.Printf("❌ Failed to load WhatsApp config for workspace %s: %v", workspaceID, err)
		}
		return nil, ErrConfigurationMissing
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("%w (disabled)", ErrConfigurationMissing)
	}
	return cfg, nil
}

// RenderBill renders bill with the workspace template (or the default one)
func (g *GatewayClient) RenderBill(cfg *models.WhatsAppConfig, bill *models.BillData) string {
	tmpl := cfg.MessageTemplate
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultBillTemplate
	}
	return g.formatter.Format(tmpl, bill)
}

// SendBill renders bill and sends it to the customer's WhatsApp. On success
// the invoice number is appended to the workspace's sent log.
func (g *GatewayClient) SendBill(bill *models.BillData, workspaceID string) (*SendResult, error) {
	cfg, err := g.LoadConfig(workspaceID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(bill.CustomerPhone) == "" {
		return nil, fmt.Errorf("%w: customer phone number is required", ErrValidation)
	}

	chatID := ChatID(bill.CustomerPhone, g.countryCode)
	messageID, err := g.sendText(cfg, chatID, g.RenderBill(cfg, bill))
	if err != nil {
		log.Printf("❌ Failed to send bill %s to %s: %v", bill.InvoiceNumber, chatID, err)
		return nil, err
	}

	record := models.SentBillRecord{
		InvoiceNumber: bill.InvoiceNumber,
		CustomerPhone: bill.CustomerPhone,
		SentAt:        g.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if err := g.sentLog.Append(workspaceID, record); err != nil {
		// The message already went out; only the history is affected
		log.Printf("⚠️  Bill %s sent but not recorded: %v", bill.InvoiceNumber, err)
	}

	log.Printf("✅ Bill %s sent to %s! ID: %s", bill.InvoiceNumber, chatID, messageID)
	return &SendResult{MessageID: messageID, ChatID: chatID}, nil
}

// SendTestMessage sends the canned test text to phone. The sent log is not touched.
func (g *GatewayClient) SendTestMessage(phone, workspaceID string) (*SendResult, error) {
	cfg, err := g.LoadConfig(workspaceID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(phone) == "" {
		return nil, fmt.Errorf("%w: phone number is required", ErrValidation)
	}

	chatID := ChatID(phone, g.countryCode)
	messageID, err := g.sendText(cfg, chatID, TestMessageText)
	if err != nil {
		log.Printf("❌ Failed to send test message to %s: %v", chatID, err)
		return nil, err
	}

	log.Printf("✅ Test message sent to %s", chatID)
	return &SendResult{MessageID: messageID, ChatID: chatID}, nil
}

// CheckConnection asks the gateway for the session status. It never fails;
// problems come back as Connected=false with a message.
func (g *GatewayClient) CheckConnection(workspaceID string) ConnectionStatus {
	cfg, err := g.LoadConfig(workspaceID)
	if err != nil {
		return ConnectionStatus{Message: err.Error()}
	}

	agent := fiber.Get(endpoint(cfg.APIURL, "/api/sessions/"+url.PathEscape(cfg.SessionName)))
	agent.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	g.prepare(agent, cfg)

	code, body, err := g.do(agent)
	if err != nil {
		log.Printf("⚠️  Session check for workspace %s failed: %v", workspaceID, err)
		return ConnectionStatus{Message: fmt.Sprintf("Could not reach WhatsApp gateway: %v", err)}
	}
	if code < 200 || code >= 300 {
		return ConnectionStatus{Message: fmt.Sprintf("Gateway returned status %d: %s", code, strings.TrimSpace(string(body)))}
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return ConnectionStatus{Message: fmt.Sprintf("Unexpected gateway response: %v", err)}
	}

	if connectedStatuses[session.Status] {
		return ConnectionStatus{Connected: true, Status: session.Status, Message: "WhatsApp session is connected"}
	}
	return ConnectionStatus{Status: session.Status, Message: fmt.Sprintf("WhatsApp session is %s", session.Status)}
}

func (g *GatewayClient) sendText(cfg *models.WhatsAppConfig, chatID, text string) (string, error) {
	agent := fiber.Post(endpoint(cfg.APIURL, "/api/sendText"))
	agent.JSON(sendTextRequest{
		Session: cfg.SessionName,
		ChatID:  chatID,
		Text:    text,
	})
	g.prepare(agent, cfg)

	code, body, err := g.do(agent)
	if err != nil {
		return "", err
	}
	if code < 200 || code >= 300 {
		return "", fmt.Errorf("%w (status %d): %s", ErrGatewaySend, code, strings.TrimSpace(string(body)))
	}

	var resp sendTextResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("⚠️  Gateway accepted message to %s but returned no JSON: %v", chatID, err)
		return "", nil
	}
	if id := messageIDFrom(resp.ID); id != "" {
		return id, nil
	}
	return resp.MessageID, nil
}

func (g *GatewayClient) prepare(agent *fiber.Agent, cfg *models.WhatsAppConfig) {
	if cfg.APIKey != "" {
		agent.Set("X-Api-Key", cfg.APIKey)
	}
	if g.timeout > 0 {
		agent.Timeout(g.timeout)
	}
}

// do runs agent and folds transport failures into ErrNetwork
func (g *GatewayClient) do(agent *fiber.Agent) (int, []byte, error) {
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, errors.Join(errs...))
	}
	return code, body, nil
}

// messageIDFrom accepts both a plain string id and the {"_serialized": ...}
// object some gateway engines return.
func messageIDFrom(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var obj struct {
		Serialized string `json:"_serialized"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Serialized
	}
	return ""
}

func endpoint(apiURL, path string) string {
	return strings.TrimRight(apiURL, "/") + path
}
