package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
)

// newAuditCmd exposes the otherwise write-only audit trail (every other
// command appends to it via openAudit/appendAudit) as a read path, so an
// operator can answer "what has this governance toolkit actually done"
// without reaching into the bbolt file directly.
func newAuditCmd(state *cliState) *cobra.Command {
	var eventType, toolName, format string
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent governance audit trail entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			auditLog, logger := openAudit(state)
			if auditLog == nil {
				return fmt.Errorf("governance audit trail unavailable under %s", state.cfg.DataDir)
			}
			defer auditLog.Close()
			_ = logger

			records, err := auditLog.Recent(audit.Filter{
				Type:     audit.EventType(eventType),
				ToolName: toolName,
				Limit:    limit,
			})
			if err != nil {
				return err
			}
			return printOutput(cmd, records, format)
		},
	}

	cmd.Flags().StringVar(&eventType, "type", "", "filter by event type (materialize, digest, diff, lock_check, lock_write, attest, verify_pin, scan)")
	cmd.Flags().StringVar(&toolName, "tool", "", "filter by tool name")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of records to return")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")

	return cmd
}
