package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ananth-NQI/billpe-backend/internal/models"
)

// ErrNotFound is returned when a key has never been written
var ErrNotFound = errors.New("key not found")

// ParseError is returned when a stored value cannot be decoded
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("corrupt value for %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Store is the workspace-scoped key-value storage every backend implements
type Store interface {
	// Get returns ErrNotFound when the key does not exist
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Key layout shared with the dashboard's storage
func ConfigKey(workspaceID string) string {
	return "whatsapp_config_" + workspaceID
}

func SentBillsKey(workspaceID string) string {
	return "whatsapp_sent_bills_" + workspaceID
}

// GetJSON loads key into v. It returns ErrNotFound or a *ParseError so the
// caller can decide whether missing and corrupt data mean the same thing.
func GetJSON(s Store, key string, v interface{}) error {
	raw, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ParseError{Key: key, Err: err}
	}
	return nil
}

// SetJSON encodes v and stores it under key
func SetJSON(s Store, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(key, raw)
}

// GetConfig returns the stored WhatsApp config of a workspace
func GetConfig(s Store, workspaceID string) (*models.WhatsAppConfig, error) {
	var cfg models.WhatsAppConfig
	if err := GetJSON(s, ConfigKey(workspaceID), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig stores the WhatsApp config of a workspace
func SaveConfig(s Store, workspaceID string, cfg *models.WhatsAppConfig) error {
	return SetJSON(s, ConfigKey(workspaceID), cfg)
}

// IsNotFound reports whether err means the key is absent
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCorrupt reports whether err is a decode failure
func IsCorrupt(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
