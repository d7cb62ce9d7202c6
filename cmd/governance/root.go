package main

import (
	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/config"
)

// cliState carries the flags and loaded configuration shared by every
// subcommand, following the teacher's cmd_helpers.go pattern of a small
// struct threaded through RunE closures instead of package globals.
type cliState struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           "governance",
		Short:         "Capability governance toolkit for MCP servers",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(state.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			state.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&state.configPath, "config", "", "path to a governance config file (.json, .yaml, .toml)")
	root.PersistentFlags().String("server-name", "", "name of the MCP server being governed")
	root.PersistentFlags().String("data-dir", "", "directory holding the lockfile, audit log, and search index")

	root.AddCommand(
		newMaterializeCmd(state),
		newDigestCmd(state),
		newDiffCmd(state),
		newLockCmd(state),
		newCheckCmd(state),
		newAttestCmd(state),
		newVerifyPinCmd(state),
		newScanCmd(state),
		newIndexCmd(state),
		newReviewCmd(state),
		newServeCmd(state),
		newAuditCmd(state),
	)

	return root
}
