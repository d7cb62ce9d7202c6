package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/diff"
)

func newDiffCmd(state *cliState) *cobra.Command {
	var beforePath, afterPath, toolName, format string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Diff two manifests and classify every change by severity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			auditLog, logger := openAudit(state)
			if auditLog != nil {
				defer auditLog.Close()
			}

			results, err := diffManifests(beforePath, afterPath, toolName)
			appendAudit(auditLog, logger, audit.Record{
				Type:       audit.EventDiff,
				ServerName: state.cfg.ServerName,
				Outcome:    outcomeOf(err),
			})
			if err != nil {
				return err
			}

			if format == "xml" {
				for _, r := range results {
					fmt.Fprintln(cmd.OutOrStdout(), diff.FormatDeltasAsXml(r.Deltas))
				}
				return nil
			}
			if format == "report" {
				for _, r := range results {
					fmt.Fprintln(cmd.OutOrStdout(), diff.FormatReport(r))
				}
				return nil
			}
			return printJSON(cmd, results)
		},
	}

	cmd.Flags().StringVar(&beforePath, "before", "", "manifest representing the prior release (required)")
	cmd.Flags().StringVar(&afterPath, "after", "", "manifest representing the new release (required)")
	cmd.Flags().StringVar(&toolName, "tool", "", "limit the diff to a single tool name")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, xml, or report")
	_ = cmd.MarkFlagRequired("before")
	_ = cmd.MarkFlagRequired("after")

	return cmd
}

// diffManifests materializes both manifests and runs the contract diff
// engine over every tool present in either, keyed by name.
func diffManifests(beforePath, afterPath, onlyTool string) ([]diff.Result, error) {
	before, err := compileManifest(beforePath)
	if err != nil {
		return nil, fmt.Errorf("before manifest: %w", err)
	}
	after, err := compileManifest(afterPath)
	if err != nil {
		return nil, fmt.Errorf("after manifest: %w", err)
	}

	now := time.Now().UTC()
	names := unionNames(before, after)

	var results []diff.Result
	for _, name := range names {
		if onlyTool != "" && name != onlyTool {
			continue
		}

		beforeContract, hasBefore := before[name]
		afterContract, hasAfter := after[name]
		if !hasBefore || !hasAfter {
			// A tool only present on one side is a whole-tool add/remove,
			// not a field-level delta this engine classifies; callers use
			// digest.CompareServerDigests' added/removed lists for that.
			continue
		}

		beforeDigest, err := contractDigestHex(beforeContract, name, now)
		if err != nil {
			return nil, err
		}
		afterDigest, err := contractDigestHex(afterContract, name, now)
		if err != nil {
			return nil, err
		}

		results = append(results, diff.Diff(name, beforeContract, afterContract, beforeDigest, afterDigest))
	}
	return results, nil
}

func unionNames(a, b map[string]contract.ToolContract) []string {
	seen := make(map[string]bool)
	var names []string
	for name := range a {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range b {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
