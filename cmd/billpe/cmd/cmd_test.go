package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ananth-NQI/billpe-backend/internal/config"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestSeedConfigs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "workspaces.yaml", `
workspaces:
  shop-2:
    enabled: false
  shop-1:
    enabled: true
    api_url: http://waha:3000
    session_name: default
    api_key: secret
    message_template: |
      {{invoiceNumber}}
`)

	store := storage.NewMemoryStore()
	ids, err := seedConfigs(store, path)
	if err != nil {
		t.Fatalf("seedConfigs() error = %v", err)
	}
	if strings.Join(ids, ",") != "shop-1,shop-2" {
		t.Errorf("seedConfigs() ids = %v", ids)
	}

	cfg, err := storage.GetConfig(store, "shop-1")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if !cfg.Enabled || cfg.APIURL != "http://waha:3000" || cfg.APIKey != "secret" || cfg.MessageTemplate != "{{invoiceNumber}}\n" {
		t.Errorf("seeded config = %+v", cfg)
	}
}

func TestSeedConfigsRejectsIncomplete(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "workspaces:\n  shop-1:\n    enabled: true\n")

	if _, err := seedConfigs(storage.NewMemoryStore(), path); err == nil {
		t.Error("seedConfigs() accepted an enabled workspace without api_url")
	}
}

func TestSeedConfigsWritesNothingOnInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mixed.yaml", `
workspaces:
  a-ok:
    enabled: true
    api_url: http://waha:3000
    session_name: default
  b-bad:
    enabled: true
`)

	store := storage.NewMemoryStore()
	if _, err := seedConfigs(store, path); err == nil {
		t.Fatal("seedConfigs() accepted an enabled workspace without api_url")
	}
	if _, err := storage.GetConfig(store, "a-ok"); !storage.IsNotFound(err) {
		t.Errorf("GetConfig(a-ok) error = %v, expected not found", err)
	}
}

func TestRequirePersistentStorage(t *testing.T) {
	tests := []struct {
		driver  string
		wantErr bool
	}{
		{config.DriverMemory, true},
		{config.DriverSQLite, false},
		{config.DriverBolt, false},
		{config.DriverPostgres, false},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			err := requirePersistentStorage(config.StorageConfig{Driver: tt.driver})
			if (err != nil) != tt.wantErr {
				t.Errorf("requirePersistentStorage(%s) error = %v, wantErr %v", tt.driver, err, tt.wantErr)
			}
		})
	}
}

func TestOpenAppRejectsMemoryStore(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", config.DriverMemory)
	cfgFile = writeFile(t, t.TempDir(), "test.env", "STORAGE_DRIVER=memory\n")
	t.Cleanup(func() { cfgFile = "" })

	a, err := openApp()
	if err == nil {
		a.Close()
		t.Fatal("openApp() accepted the memory driver")
	}
	if !strings.Contains(err.Error(), "STORAGE_DRIVER=memory") {
		t.Errorf("openApp() error = %v", err)
	}
}

func TestRenderBill(t *testing.T) {
	dir := t.TempDir()
	bill := writeFile(t, dir, "bill.json", `{
		"invoiceNumber": "INV-7",
		"items": [{"name": "Widget", "quantity": 2, "price": 500}],
		"subtotal": "10", "discount": "0", "total": "10",
		"businessName": "Sharma Stores"
	}`)
	tmpl := writeFile(t, dir, "tmpl.txt", "{{invoiceNumber}}\n{{items}}{{#discount}}\nDiscount {{discount}}{{/discount}}\nTotal {{total}}")

	got, err := renderBill(bill, tmpl, "Rs.")
	if err != nil {
		t.Fatalf("renderBill() error = %v", err)
	}
	expected := "INV-7\n1. Widget x2 - Rs.10.00\nTotal 10.00"
	if got != expected {
		t.Errorf("renderBill() = %q, expected %q", got, expected)
	}

	got, err = renderBill(bill, "", "₹")
	if err != nil {
		t.Fatalf("renderBill() default template error = %v", err)
	}
	if !strings.Contains(got, "*Sharma Stores*") {
		t.Errorf("renderBill() default template = %q", got)
	}

	if _, err := renderBill(filepath.Join(dir, "missing.json"), "", "₹"); err == nil {
		t.Error("renderBill() with missing bill succeeded")
	}
}
