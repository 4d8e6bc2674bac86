package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Ananth-NQI/billpe-backend/internal/models"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

// SeedFile is the YAML layout accepted by `billpe seed`
type SeedFile struct {
	Workspaces map[string]models.WhatsAppConfig `yaml:"workspaces"`
}

// seedCmd writes workspace configs from a YAML file.
var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Seed workspace WhatsApp configs from YAML",
	Long: `Write WhatsApp configs for several workspaces at once.

File format:
  workspaces:
    shop-42:
      enabled: true
      api_url: http://waha:3000
      session_name: default
      api_key: secret
      message_template: |
        {{businessName}} - {{invoiceNumber}}
        Total: {{total}}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		seeded, err := seedConfigs(a.store, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Seeded %d workspace(s)\n", len(seeded))
		return nil
	},
}

func seedConfigs(store storage.Store, path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	ids := make([]string, 0, len(seed.Workspaces))
	for id := range seed.Workspaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Nothing is written unless every workspace is valid
	for _, id := range ids {
		cfg := seed.Workspaces[id]
		if cfg.Enabled && (cfg.APIURL == "" || cfg.SessionName == "") {
			return nil, fmt.Errorf("workspace %s: api_url and session_name are required when enabled", id)
		}
	}

	for _, id := range ids {
		cfg := seed.Workspaces[id]
		if err := storage.SaveConfig(store, id, &cfg); err != nil {
			return nil, fmt.Errorf("workspace %s: %w", id, err)
		}
		slog.Info("Seeded workspace", "workspace", id, "enabled", cfg.Enabled)
	}
	return ids, nil
}
