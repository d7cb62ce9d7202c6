package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/lockfile"
)

func newLockCmd(state *cliState) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Generate and seal the capability lockfile from a manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := state.cfg

			auditLog, logger := openAudit(state)
			if auditLog != nil {
				defer auditLog.Close()
			}

			var writeErr error
			defer func() {
				appendAudit(auditLog, logger, audit.Record{
					Type:       audit.EventLockWrite,
					ServerName: cfg.ServerName,
					Outcome:    outcomeOf(writeErr),
				})
			}()

			if err := lockfile.ValidateFusionVersion(cfg.FusionVersion); err != nil {
				writeErr = err
				return err
			}

			contracts, err := compileManifest(manifestPath)
			if err != nil {
				writeErr = err
				return err
			}

			lock, err := lockfile.GenerateLockfile(cfg.ServerName, contracts, cfg.FusionVersion, lockfile.Options{}, time.Now().UTC())
			if err != nil {
				writeErr = fmt.Errorf("generate lockfile: %w", err)
				return writeErr
			}

			serialized, err := lockfile.SerializeLockfile(lock)
			if err != nil {
				writeErr = fmt.Errorf("serialize lockfile: %w", err)
				return writeErr
			}

			path := cfg.LockfilePath()
			if err := os.WriteFile(path, []byte(serialized), 0o644); err != nil {
				writeErr = fmt.Errorf("write lockfile %s: %w", path, err)
				return writeErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (integrityDigest=%s)\n", path, lock.IntegrityDigest)
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a tool manifest JSON file (required)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
