package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/lockfile"
)

func newCheckCmd(state *cliState) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a manifest's current contracts against the sealed lockfile for drift",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := state.cfg

			auditLog, logger := openAudit(state)
			if auditLog != nil {
				defer auditLog.Close()
			}

			raw, err := os.ReadFile(cfg.LockfilePath())
			if err != nil {
				return fmt.Errorf("read lockfile %s: %w", cfg.LockfilePath(), err)
			}

			lock, ok := lockfile.ParseLockfile(string(raw))
			if !ok {
				return fmt.Errorf("malformed lockfile at %s", cfg.LockfilePath())
			}

			contracts, err := compileManifest(manifestPath)
			if err != nil {
				return err
			}

			result, err := lockfile.CheckLockfile(lock, contracts, lockfile.CheckLockfileOptions{}, time.Now().UTC())
			if err != nil {
				appendAudit(auditLog, logger, audit.Record{
					Type:       audit.EventLockCheck,
					ServerName: cfg.ServerName,
					Outcome:    "failure",
					Detail:     err.Error(),
				})
				return err
			}

			checkOutcome := "success"
			if !result.OK {
				checkOutcome = "drift"
			}
			appendAudit(auditLog, logger, audit.Record{
				Type:       audit.EventLockCheck,
				ServerName: cfg.ServerName,
				Outcome:    checkOutcome,
				Detail:     result.Message,
			})

			if err := printJSON(cmd, result); err != nil {
				return err
			}
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a tool manifest JSON file (required)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
