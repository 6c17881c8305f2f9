package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BetterCallFirewall/ShopAudit/internal/audit"
)

var auditJSON bool

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Run one audit and print the report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "print the raw result as JSON")
}

func runAudit(cmd *cobra.Command, args []string) error {
	url, ok := audit.NormalizeURL(args[0])
	if !ok {
		return errors.New("url must not be empty")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	result, err := a.client.Analyze(cmd.Context(), url)
	if err != nil {
		// diagnostic command: show the cause, not the end-user text
		return err
	}

	out := cmd.OutOrStdout()
	if auditJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, err = fmt.Fprintln(out, renderReport(result))
	return err
}
