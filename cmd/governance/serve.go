package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/digest"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/httpapi"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/lockfile"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/observe"
	"github.com/vinkius-labs/mcp-fusion-go/internal/logs"
)

// manifestController serves a single, already-compiled manifest as the
// read-only governance HTTP surface's state. It satisfies httpapi.Controller
// by returning the same values, built once at process start, on every
// request; nothing here is mutated after construction, so no request can
// influence another.
type manifestController struct {
	lock        lockfile.CapabilityLockfile
	hasLock     bool
	digest      interface{}
	hasDigest   bool
	manifest    interface{}
	hasManifest bool
}

func (c manifestController) CurrentLockfile() (lockfile.CapabilityLockfile, bool) {
	return c.lock, c.hasLock
}
func (c manifestController) ServerDigest() (interface{}, bool) { return c.digest, c.hasDigest }
func (c manifestController) Manifest() (interface{}, bool)     { return c.manifest, c.hasManifest }

func newServeCmd(state *cliState) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the governance lockfile, digest, and manifest as read-only JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := state.cfg
			ctx := context.Background()

			logger, err := logs.Setup(logs.DefaultConfig())
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			shutdownTracing, err := observe.SetupTracing(ctx, observe.TracingConfig{
				Enabled:      cfg.Tracing.Enabled,
				OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
			}, cfg.ServerName, cfg.FusionVersion, logger)
			if err != nil {
				return err
			}
			defer shutdownTracing(ctx) //nolint:errcheck

			registry := prometheus.NewRegistry()
			var metrics *observe.Metrics
			if cfg.Tracing.MetricsEnabled {
				metrics = observe.NewMetrics(registry)
			}
			observer := observe.New(cfg.ServerName, logger, metrics)

			result, err := observer.Observe(ctx, "serve.startup", map[string]string{"manifest": manifestPath}, func() (any, error) {
				contracts, err := compileManifest(manifestPath)
				if err != nil {
					return nil, err
				}

				now := time.Now().UTC()
				serverDigest, err := digest.ComputeServerDigest(contracts, now)
				if err != nil {
					return nil, err
				}

				lock, err := lockfile.GenerateLockfile(cfg.ServerName, contracts, cfg.FusionVersion, lockfile.Options{}, now)
				if err != nil {
					return nil, err
				}

				return manifestController{
					lock:        lock,
					hasLock:     true,
					digest:      serverDigest,
					hasDigest:   true,
					manifest:    buildManifestView(cfg.ServerName, cfg.FusionVersion, contracts),
					hasManifest: true,
				}, nil
			})
			if err != nil {
				return err
			}
			controller := result.(manifestController)

			mux := http.NewServeMux()
			mux.Handle("/", httpapi.NewServer(controller, logger))
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

			logger.Infow("serving governance HTTP surface", "listen", cfg.HTTP.Listen)
			if err := http.ListenAndServe(cfg.HTTP.Listen, mux); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a tool manifest JSON file (required)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

// buildManifestView renders the §6 "Manifest resource" shape this module
// produces: server identity plus per-tool capability summaries. This is
// NOT the MCP protocol or tool dispatch — it only echoes what the
// contracts already declare.
func buildManifestView(serverName, fusionVersion string, contracts map[string]contract.ToolContract) map[string]interface{} {
	tools := make(map[string]interface{}, len(contracts))
	for _, name := range contract.SortedNames(contracts) {
		c := contracts[name]
		description := ""
		if c.Surface.Description != nil {
			description = *c.Surface.Description
		}
		tools[name] = map[string]interface{}{
			"description":         description,
			"tags":                c.Surface.Tags,
			"actions":             c.SortedActionNames(),
			"input_schema_digest": c.Surface.InputSchemaDigest,
		}
	}

	return map[string]interface{}{
		"server":              serverName,
		"mcp_fusion_version":  fusionVersion,
		"architecture":        "MVA (Model-View-Agent)",
		"capabilities": map[string]interface{}{
			"tools": tools,
		},
	}
}
