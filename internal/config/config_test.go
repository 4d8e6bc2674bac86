package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("GATEWAY_TIMEOUT", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("Storage.Driver = %q, expected %q", cfg.Storage.Driver, DriverMemory)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, expected 8080", cfg.Port)
	}
	if cfg.Gateway.Timeout != 0 {
		t.Errorf("Gateway.Timeout = %v, expected none", cfg.Gateway.Timeout)
	}
	if cfg.Gateway.DefaultCountryCode != "91" {
		t.Errorf("DefaultCountryCode = %q, expected 91", cfg.Gateway.DefaultCountryCode)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "bolt")
	t.Setenv("GATEWAY_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Driver != DriverBolt {
		t.Errorf("Storage.Driver = %q, expected bolt", cfg.Storage.Driver)
	}
	if cfg.Gateway.Timeout != 15*time.Second {
		t.Errorf("Gateway.Timeout = %v, expected 15s", cfg.Gateway.Timeout)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "STORAGE_DRIVER", "redis"},
		{"bad timeout", "GATEWAY_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q succeeded, expected error", tt.key, tt.val)
			}
		})
	}
}
