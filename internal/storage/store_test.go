package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ananth-NQI/billpe-backend/internal/models"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	boltStore, err := NewBoltStore(filepath.Join(dir, "billpe.db"))
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "billpe.sqlite")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	dbStore, err := NewDatabaseStore(db)
	if err != nil {
		t.Fatalf("NewDatabaseStore() error = %v", err)
	}

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   boltStore,
		"gorm":   dbStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, expected ErrNotFound", err)
			}

			if err := s.Set("k", []byte("v1")); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := s.Set("k", []byte("v2")); err != nil {
				t.Fatalf("Set() overwrite error = %v", err)
			}

			got, err := s.Get("k")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != "v2" {
				t.Errorf("Get() = %q, expected %q", got, "v2")
			}
		})
	}
}

func TestGetJSONDistinguishesMissingAndCorrupt(t *testing.T) {
	s := NewMemoryStore()

	var cfg models.WhatsAppConfig
	err := GetJSON(s, ConfigKey("ws1"), &cfg)
	if !IsNotFound(err) || IsCorrupt(err) {
		t.Errorf("GetJSON() on empty store error = %v, expected not found", err)
	}

	_ = s.Set(ConfigKey("ws1"), []byte("{not json"))
	err = GetJSON(s, ConfigKey("ws1"), &cfg)
	if !IsCorrupt(err) || IsNotFound(err) {
		t.Errorf("GetJSON() on corrupt value error = %v, expected *ParseError", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	in := &models.WhatsAppConfig{
		Enabled:     true,
		APIURL:      "http://localhost:3000",
		SessionName: "default",
		APIKey:      "secret",
	}
	if err := SaveConfig(s, "ws1", in); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	raw, _ := s.Get("whatsapp_config_ws1")
	if len(raw) == 0 {
		t.Fatal("config not stored under whatsapp_config_ws1")
	}

	out, err := GetConfig(s, "ws1")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if *out != *in {
		t.Errorf("GetConfig() = %+v, expected %+v", out, in)
	}

	if _, err := GetConfig(s, "ws2"); !IsNotFound(err) {
		t.Errorf("GetConfig(ws2) error = %v, expected not found", err)
	}
}
