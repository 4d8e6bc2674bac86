package models

// WhatsAppConfig is the per-workspace gateway configuration.
// Stored as JSON under whatsapp_config_{workspaceId}.
type WhatsAppConfig struct {
	Enabled         bool   `json:"enabled" yaml:"enabled"`
	APIURL          string `json:"apiUrl" yaml:"api_url"`
	SessionName     string `json:"sessionName" yaml:"session_name"`
	PhoneNumber     string `json:"phoneNumber" yaml:"phone_number"` // Sender number linked to the session
	APIKey          string `json:"apiKey,omitempty" yaml:"api_key"`
	MessageTemplate string `json:"messageTemplate" yaml:"message_template"`
}

// Masked returns a copy safe to return over the API
func (c WhatsAppConfig) Masked() WhatsAppConfig {
	if c.APIKey != "" {
		c.APIKey = "********"
	}
	return c
}
