package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/attestation"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/digest"
)

func buildSigner(state *cliState) (attestation.Signer, error) {
	secret, err := state.cfg.AttestationSecret()
	if err != nil {
		return nil, err
	}

	switch state.cfg.Attestation.Signer {
	case "jwt":
		return attestation.NewJWTSigner([]byte(secret), state.cfg.ServerName)
	default:
		return attestation.NewHMACSigner([]byte(secret))
	}
}

func newAttestCmd(state *cliState) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "attest",
		Short: "Sign a manifest's ServerDigest with the configured attestation signer",
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

			var expected *string
			if ed := state.cfg.Attestation.ExpectedDigest; ed != "" {
				expected = &ed
			}

			result, err := attestation.AttestServerDigest(serverDigest.Digest, attestation.AttestOptions{
				Signer:         signer,
				ExpectedDigest: expected,
			}, now)
			appendAudit(auditLog, logger, audit.Record{
				Type:       audit.EventAttest,
				ServerName: state.cfg.ServerName,
				Outcome:    outcomeOf(err),
			})
			if err != nil {
				return fmt.Errorf("attest server digest: %w", err)
			}

			trust := attestation.BuildTrustCapability(result, len(contracts))
			return printJSON(cmd, struct {
				Result attestation.Result          `json:"result"`
				Trust  attestation.TrustCapability `json:"trust"`
			}{result, trust})
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a tool manifest JSON file (required)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
