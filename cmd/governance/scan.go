package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/entitlements"
)

func newScanCmd(state *cliState) *cobra.Command {
	var sourcePath string
	var readOnly, destructive bool
	var allowed []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Statically scan a handler source file for entitlements and evasion signals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			auditLog, logger := openAudit(state)
			if auditLog != nil {
				defer auditLog.Close()
			}

			raw, err := os.ReadFile(sourcePath)
			if err != nil {
				return err
			}

			claims := entitlements.DeclaredClaims{
				ReadOnly:    readOnly,
				Destructive: destructive,
				Allowed:     toCategories(allowed),
			}

			report := entitlements.ScanAndValidate(string(raw), claims)
			appendAudit(auditLog, logger, audit.Record{
				Type:       audit.EventScan,
				ServerName: state.cfg.ServerName,
				Outcome:    "success",
			})
			return printJSON(cmd, report)
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "path to the handler source file to scan (required)")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "the tool's declared readOnly claim")
	cmd.Flags().BoolVar(&destructive, "destructive", false, "the tool's declared destructive claim")
	cmd.Flags().StringSliceVar(&allowed, "allowed", nil, "entitlement categories exempted from the generic violation rule")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func toCategories(in []string) []entitlements.Category {
	out := make([]entitlements.Category, len(in))
	for i, s := range in {
		out[i] = entitlements.Category(s)
	}
	return out
}
