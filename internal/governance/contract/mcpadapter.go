package contract

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// FromMCPTool adapts a real mcp.Tool (as constructed with mcp.NewTool and
// its functional options, the way the teacher's internal/server/mcp.go
// registers every tool it exposes) into a ToolDefinition, so the
// materializer consumes the actual MCP wire type instead of an ad-hoc map.
// The destructive/idempotent/readOnly hints embedded in mcp.ToolAnnotation
// are not read here; ActionMetadataFromMCPTool turns them into the single
// action a bare mcp.Tool describes.
func FromMCPTool(t mcp.Tool) ToolDefinition {
	return ToolDefinition{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

// ActionMetadataFromMCPTool derives an ActionMetadata from an mcp.Tool's
// annotations, for single-action builders where the tool IS the action
// (most MCP servers expose one action per tool; multi-action tools layer
// ActionMetadata per action key on top of this baseline).
func ActionMetadataFromMCPTool(t mcp.Tool) ActionMetadata {
	required := requiredFieldsFromSchema(t.InputSchema)

	meta := ActionMetadata{
		Description:    t.Description,
		RequiredFields: required,
		InputSchema:    t.InputSchema,
	}

	if a := t.Annotations; a.Title != "" || a.ReadOnlyHint != nil || a.DestructiveHint != nil || a.IdempotentHint != nil {
		if a.ReadOnlyHint != nil {
			meta.ReadOnly = *a.ReadOnlyHint
		}
		if a.DestructiveHint != nil {
			meta.Destructive = *a.DestructiveHint
		}
		if a.IdempotentHint != nil {
			meta.Idempotent = *a.IdempotentHint
		}
	}

	return meta
}

// requiredFieldsFromSchema extracts the "required" array of an
// mcp.ToolInputSchema (or any JSON-schema-shaped value) via a round trip
// through encoding/json, since mcp.ToolInputSchema's Required field is
// only reliably populated once the schema has been marshaled.
func requiredFieldsFromSchema(schema any) []string {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil
	}

	var shape struct {
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil
	}
	return shape.Required
}

// StaticMCPToolBuilder is a ToolBuilder backed directly by an mcp.Tool
// plus the governance-specific metadata (handler source, presenter info,
// middleware chain) a collaborator attaches alongside it. It exists so a
// single mcp.Tool — the unit every real MCP server registers — can be fed
// straight into contract.Materialize without a hand-rolled shim.
type StaticMCPToolBuilder struct {
	Tool                   mcp.Tool
	Tags                   []string
	Presenter              PresenterInfo
	Middleware             []string
	Guardrails             CognitiveGuardrails
	StateFingerprint       *string
	ConcurrencyFingerprint *string
	HandlerSource          string
	HasHandlerSource       bool
}

func (b StaticMCPToolBuilder) GetName() string        { return b.Tool.Name }
func (b StaticMCPToolBuilder) GetDescription() string { return b.Tool.Description }
func (b StaticMCPToolBuilder) GetTags() []string      { return b.Tags }

func (b StaticMCPToolBuilder) GetActionNames() []string { return []string{b.Tool.Name} }

func (b StaticMCPToolBuilder) GetActionMetadata(action string) ActionMetadata {
	return ActionMetadataFromMCPTool(b.Tool)
}

func (b StaticMCPToolBuilder) BuildToolDefinition() ToolDefinition {
	return FromMCPTool(b.Tool)
}

func (b StaticMCPToolBuilder) GetPresenterInfo() PresenterInfo { return b.Presenter }
func (b StaticMCPToolBuilder) GetMiddlewareChain() []string    { return b.Middleware }
func (b StaticMCPToolBuilder) GetCognitiveGuardrails() CognitiveGuardrails {
	return b.Guardrails
}
func (b StaticMCPToolBuilder) GetStateSyncFingerprint() *string   { return b.StateFingerprint }
func (b StaticMCPToolBuilder) GetConcurrencyFingerprint() *string { return b.ConcurrencyFingerprint }
func (b StaticMCPToolBuilder) GetHandlerSource() (string, bool) {
	return b.HandlerSource, b.HasHandlerSource
}

var _ ToolBuilder = StaticMCPToolBuilder{}
