// Package cmd provides CLI commands for billpe.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ananth-NQI/billpe-backend/database"
	"github.com/Ananth-NQI/billpe-backend/internal/config"
	"github.com/Ananth-NQI/billpe-backend/internal/services"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "billpe",
	Short: "Operate BillPe WhatsApp bill delivery",
	Long: `billpe is an operator tool for the BillPe WhatsApp integration.

It works against the same storage as the server (STORAGE_DRIVER) and can:
- Preview a bill message from a template
- Check a workspace's gateway session
- Send a test message
- Seed workspace configs from a YAML file
- Print a workspace's sent bills

Example:
  billpe render --bill bill.json
  billpe check shop-42
  billpe seed workspaces.yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(historyCmd)
}

// app bundles what the commands need
type app struct {
	cfg     *config.Config
	store   storage.Store
	sentLog *services.SentLog
	gateway *services.GatewayClient
}

func openApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := requirePersistentStorage(cfg.Storage); err != nil {
		return nil, err
	}
	slog.Debug("Opening storage", "driver", cfg.Storage.Driver)

	store, err := database.OpenStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	sentLog := services.NewSentLog(store)
	gateway := services.NewGatewayClient(store, sentLog, services.NewFormatter(cfg.Gateway.CurrencySymbol), services.GatewayOptions{
		Timeout:     cfg.Gateway.Timeout,
		CountryCode: cfg.Gateway.DefaultCountryCode,
	})

	return &app{cfg: cfg, store: store, sentLog: sentLog, gateway: gateway}, nil
}

// requirePersistentStorage rejects the memory driver, which would lose
// everything a command writes as soon as it exits.
func requirePersistentStorage(cfg config.StorageConfig) error {
	if cfg.Driver == config.DriverMemory {
		return fmt.Errorf("STORAGE_DRIVER=%s keeps nothing between runs; set STORAGE_DRIVER to %s, %s or %s (or pass --config)",
			cfg.Driver, config.DriverSQLite, config.DriverBolt, config.DriverPostgres)
	}
	return nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}
