package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/digest"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/index"
	"github.com/vinkius-labs/mcp-fusion-go/internal/logs"
)

func newIndexCmd(state *cliState) *cobra.Command {
	var manifestPath, query string
	var limit int

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index a manifest's contracts for full-text/faceted capability search, or query an existing index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logs.Setup(logs.DefaultConfig())
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			idx, err := index.Open(state.cfg.DataDir, logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			if query != "" {
				results, err := idx.Search(query, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd, results)
			}

			contracts, err := compileManifest(manifestPath)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			for _, name := range contract.SortedNames(contracts) {
				c := contracts[name]
				entry, err := digest.ComputeToolDigest(name, c, now)
				if err != nil {
					return err
				}
				if err := idx.IndexContract(state.cfg.ServerName, c, entry.Digest); err != nil {
					return err
				}
			}

			count, err := idx.DocumentCount()
			if err != nil {
				return err
			}
			cmd.Printf("indexed %d contracts under %s\n", count, state.cfg.DataDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest to index")
	cmd.Flags().StringVar(&query, "query", "", "full-text query to run against the existing index instead of (re)indexing")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum search results to return")

	return cmd
}
