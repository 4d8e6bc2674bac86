package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ananth-NQI/billpe-backend/internal/config"
	"github.com/Ananth-NQI/billpe-backend/internal/models"
	"github.com/Ananth-NQI/billpe-backend/internal/services"
)

var (
	billFile     string
	templateFile string
)

// renderCmd prints a bill message without sending it.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a bill message from a template",
	Long: `Render a bill message exactly as it would be sent on WhatsApp.

Without --template the built-in bill template is used.

Example:
  billpe render --bill bill.json --template template.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		out, err := renderBill(billFile, templateFile, cfg.Gateway.CurrencySymbol)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&billFile, "bill", "", "bill JSON file (required)")
	renderCmd.Flags().StringVar(&templateFile, "template", "", "message template file")
	_ = renderCmd.MarkFlagRequired("bill")
}

func renderBill(billPath, templatePath, currencySymbol string) (string, error) {
	raw, err := os.ReadFile(billPath)
	if err != nil {
		return "", fmt.Errorf("failed to read bill: %w", err)
	}
	var bill models.BillData
	if err := json.Unmarshal(raw, &bill); err != nil {
		return "", fmt.Errorf("failed to parse bill %s: %w", billPath, err)
	}

	tmpl := services.DefaultBillTemplate
	if templatePath != "" {
		b, err := os.ReadFile(templatePath)
		if err != nil {
			return "", fmt.Errorf("failed to read template: %w", err)
		}
		tmpl = string(b)
	}

	return services.NewFormatter(currencySymbol).Format(tmpl, &bill), nil
}
