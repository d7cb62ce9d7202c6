package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/digest"
)

func newDigestCmd(state *cliState) *cobra.Command {
	var manifestPath, format string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Compute the ServerDigest for every tool in a manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			auditLog, logger := openAudit(state)
			if auditLog != nil {
				defer auditLog.Close()
			}

			contracts, err := compileManifest(manifestPath)
			if err != nil {
				return err
			}

			serverDigest, err := digest.ComputeServerDigest(contracts, time.Now().UTC())
			appendAudit(auditLog, logger, audit.Record{
				Type:       audit.EventDigest,
				ServerName: state.cfg.ServerName,
				Outcome:    outcomeOf(err),
			})
			if err != nil {
				return err
			}
			return printOutput(cmd, serverDigest, format)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a tool manifest JSON file (required)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
