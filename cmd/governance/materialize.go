package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

func newMaterializeCmd(state *cliState) *cobra.Command {
	var manifestPath, format string

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Materialize tool builders in a manifest into ToolContracts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			auditLog, logger := openAudit(state)
			if auditLog != nil {
				defer auditLog.Close()
			}

			contracts, err := compileManifest(manifestPath)
			appendAudit(auditLog, logger, audit.Record{
				Type:       audit.EventMaterialize,
				ServerName: state.cfg.ServerName,
				Outcome:    outcomeOf(err),
			})
			if err != nil {
				return err
			}
			return printOutput(cmd, contracts, format)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a tool manifest JSON file (required)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func compileManifest(path string) (map[string]contract.ToolContract, error) {
	manifest, err := loadManifest(path)
	if err != nil {
		return nil, err
	}

	builders, err := manifest.builders()
	if err != nil {
		return nil, err
	}

	contracts, err := contract.CompileContracts(builders)
	if err != nil {
		return nil, fmt.Errorf("compile contracts: %w", err)
	}
	return contracts, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printOutput renders v as JSON or, when format is "yaml", as YAML --
// the same contract/digest/lockfile payload either way, reshaped for
// operators who pipe governance output into YAML-native tooling.
func printOutput(cmd *cobra.Command, v interface{}, format string) error {
	if format != "yaml" {
		return printJSON(cmd, v)
	}

	// Round-trip through JSON first so exported-but-unexported-in-yaml
	// struct tags (json:"...") still control field names.
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(generic)
}
