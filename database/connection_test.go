package database

import (
	"path/filepath"
	"testing"

	"github.com/Ananth-NQI/billpe-backend/internal/config"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"memory", config.StorageConfig{Driver: config.DriverMemory}},
		{"bolt", config.StorageConfig{Driver: config.DriverBolt, BoltPath: filepath.Join(dir, "nested", "billpe.db")}},
		{"sqlite", config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "billpe.sqlite")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := OpenStore(tt.cfg)
			if err != nil {
				t.Fatalf("OpenStore() error = %v", err)
			}
			defer s.Close()

			if err := s.Set("probe", []byte("ok")); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if _, err := s.Get("absent"); !storage.IsNotFound(err) {
				t.Errorf("Get(absent) error = %v, expected not found", err)
			}
		})
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	if _, err := OpenStore(config.StorageConfig{Driver: "redis"}); err == nil {
		t.Error("OpenStore() with unknown driver succeeded, expected error")
	}
}
