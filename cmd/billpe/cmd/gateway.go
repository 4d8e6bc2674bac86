package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// checkCmd reports a workspace's gateway session status.
var checkCmd = &cobra.Command{
	Use:   "check <workspace-id>",
	Short: "Check the WhatsApp session of a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		status := a.gateway.CheckConnection(args[0])
		slog.Debug("Session checked", "workspace", args[0], "connected", status.Connected, "status", status.Status)

		mark := "❌"
		if status.Connected {
			mark = "✅"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, status.Message)
		if !status.Connected {
			return fmt.Errorf("session not connected")
		}
		return nil
	},
}

// testCmd sends the canned test message.
var testCmd = &cobra.Command{
	Use:   "test <workspace-id> <phone>",
	Short: "Send a WhatsApp test message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.gateway.SendTestMessage(args[1], args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Test message sent to %s (id %s)\n", result.ChatID, result.MessageID)
		return nil
	},
}

// historyCmd prints the sent bills log.
var historyCmd = &cobra.Command{
	Use:   "history <workspace-id>",
	Short: "List bills sent on WhatsApp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		records := a.sentLog.History(args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n=== Sent bills (%d) ===\n", len(records))
		for _, r := range records {
			fmt.Fprintf(out, "%-24s %-16s %s\n", r.SentAt, r.CustomerPhone, r.InvoiceNumber)
		}
		fmt.Fprintln(out)
		return nil
	},
}
