package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

// toolManifestEntry is the on-disk shape `governance materialize`/`digest`/
// `diff`/`lock` read: one entry per tool builder a server exposes, the
// bits of §4.4's ToolBuilder interface a CLI invocation (rather than an
// in-process server) can supply as flat JSON.
type toolManifestEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`

	InputSchema struct {
		Type       string                 `json:"type"`
		Properties map[string]interface{} `json:"properties,omitempty"`
		Required   []string               `json:"required,omitempty"`
	} `json:"inputSchema"`

	ReadOnly    bool `json:"readOnly"`
	Destructive bool `json:"destructive"`
	Idempotent  bool `json:"idempotent"`

	MiddlewareChain []string `json:"middlewareChain,omitempty"`

	AgentLimitMax  *int `json:"agentLimitMax,omitempty"`
	EgressMaxBytes *int `json:"egressMaxBytes,omitempty"`

	AffordanceTopology  []string `json:"affordanceTopology,omitempty"`
	EmbeddedPresenters  []string `json:"embeddedPresenters,omitempty"`
	SchemaFieldCount    int      `json:"schemaFieldCount,omitempty"`
	UnboundedCollection bool     `json:"unboundedCollection,omitempty"`

	// HandlerSource is the handler's literal source text for the static
	// entitlement scanner (§4.3); HandlerSourceFile loads it from disk
	// instead when the source is large.
	HandlerSource     string `json:"handlerSource,omitempty"`
	HandlerSourceFile string `json:"handlerSourceFile,omitempty"`
}

type toolManifest struct {
	ServerName string              `json:"serverName"`
	Tools      []toolManifestEntry `json:"tools"`
}

func loadManifest(path string) (toolManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return toolManifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m toolManifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return toolManifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

func (m toolManifest) builders() ([]contract.ToolBuilder, error) {
	builders := make([]contract.ToolBuilder, 0, len(m.Tools))
	for _, e := range m.Tools {
		b, err := e.toBuilder()
		if err != nil {
			return nil, fmt.Errorf("tool %q: %w", e.Name, err)
		}
		builders = append(builders, b)
	}
	return builders, nil
}

func (e toolManifestEntry) toBuilder() (contract.StaticMCPToolBuilder, error) {
	readOnly, destructive, idempotent := e.ReadOnly, e.Destructive, e.Idempotent

	tool := mcp.Tool{
		Name:        e.Name,
		Description: e.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       e.InputSchema.Type,
			Properties: e.InputSchema.Properties,
			Required:   e.InputSchema.Required,
		},
		Annotations: mcp.ToolAnnotation{
			ReadOnlyHint:    &readOnly,
			DestructiveHint: &destructive,
			IdempotentHint:  &idempotent,
		},
	}

	source, hasSource, err := e.resolveHandlerSource()
	if err != nil {
		return contract.StaticMCPToolBuilder{}, err
	}

	return contract.StaticMCPToolBuilder{
		Tool: tool,
		Tags: e.Tags,
		Presenter: contract.PresenterInfo{
			SuggestedActions:       e.AffordanceTopology,
			EmbeddedPresenterNames: e.EmbeddedPresenters,
			SchemaFieldCount:       e.SchemaFieldCount,
			UnboundedCollection:    e.UnboundedCollection,
		},
		Middleware: e.MiddlewareChain,
		Guardrails: contract.CognitiveGuardrails{
			AgentLimitMax:  e.AgentLimitMax,
			EgressMaxBytes: e.EgressMaxBytes,
		},
		HandlerSource:    source,
		HasHandlerSource: hasSource,
	}, nil
}

func (e toolManifestEntry) resolveHandlerSource() (string, bool, error) {
	if e.HandlerSourceFile != "" {
		raw, err := os.ReadFile(e.HandlerSourceFile)
		if err != nil {
			return "", false, fmt.Errorf("read handler source file %s: %w", e.HandlerSourceFile, err)
		}
		return string(raw), true, nil
	}
	if e.HandlerSource != "" {
		return e.HandlerSource, true, nil
	}
	return "", false, nil
}
