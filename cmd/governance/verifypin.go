package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/attestation"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/digest"
)

func newVerifyPinCmd(state *cliState) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "verify-pin",
		Short: "Enforce that a manifest's ServerDigest matches the configured expected-digest pin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			auditLog, logger := openAudit(state)
			if auditLog != nil {
				defer auditLog.Close()
			}

			contracts, err := compileManifest(manifestPath)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			serverDigest, err := digest.ComputeServerDigest(contracts, now)
			if err != nil {
				return err
			}

			signer, err := buildSigner(state)
			if err != nil {
				return err
			}

			result, err := attestation.VerifyCapabilityPin(serverDigest.Digest, attestation.VerifyCapabilityPinOptions{
				Signer:         signer,
				ExpectedDigest: state.cfg.Attestation.ExpectedDigest,
				FailOnMismatch: state.cfg.Attestation.FailOnMismatch,
			}, now)
			appendAudit(auditLog, logger, audit.Record{
				Type:       audit.EventVerifyPin,
				ServerName: state.cfg.ServerName,
				Outcome:    outcomeOf(err),
			})
			if err != nil {
				// err is *attestation.AttestationError; still print the
				// full (failed) result before propagating the exit code.
				_ = printJSON(cmd, result)
				return err
			}

			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a tool manifest JSON file (required)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
