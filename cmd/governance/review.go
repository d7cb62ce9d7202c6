package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/review"
)

func newReviewCmd(state *cliState) *cobra.Command {
	var beforePath, afterPath, toolName string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively walk a contract diff before approving lockfile regeneration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := diffManifests(beforePath, afterPath, toolName)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tools present on both sides of the diff")
				return nil
			}

			for _, result := range results {
				program := tea.NewProgram(review.New(result))
				if _, err := program.Run(); err != nil {
					return fmt.Errorf("review %s: %w", result.ToolName, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&beforePath, "before", "", "manifest representing the prior release (required)")
	cmd.Flags().StringVar(&afterPath, "after", "", "manifest representing the new release (required)")
	cmd.Flags().StringVar(&toolName, "tool", "", "limit the review to a single tool name")
	_ = cmd.MarkFlagRequired("before")
	_ = cmd.MarkFlagRequired("after")

	return cmd
}
