package contract

// ToolDefinition is the normalized shape a builder's buildToolDefinition()
// must resolve to: a name, an optional description, and a JSON-schema-
// shaped input schema. It intentionally mirrors the wire shape of an MCP
// tool (github.com/mark3labs/mcp-go's mcp.Tool) without depending on that
// package directly, so any collaborator — mcp-go, a hand-rolled builder,
// or a test double — can satisfy it.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema any
}

// ActionMetadata is the per-action introspection a builder exposes for one
// of its action keys (§4.4 step 3).
type ActionMetadata struct {
	Description    string
	Destructive    bool
	Idempotent     bool
	ReadOnly       bool
	RequiredFields []string
	PresenterName  string
	InputSchema    any
	HasMiddleware  bool
}

// PresenterInfo is what a tool builder exposes about the presenter(s) it
// renders results with — the source the materializer reads behavior.* and
// tokenEconomics.* fields from (§4.4 steps 4-5).
type PresenterInfo struct {
	// SchemaDigestInputs are the egress schemas (one per action/presenter
	// variant) whose canonical digests are combined into
	// Behavior.EgressSchemaDigest.
	SchemaDigestInputs []any
	// SystemRules are the static or dynamic system-prompt rule sources
	// attached to this tool's presenter. A rule is "static" when every
	// entry is a constant literal string; if any entry is the result of a
	// function application it is "dynamic" (§9 Open Question: any
	// function application makes the whole set dynamic).
	SystemRules []SystemRule
	// SchemaFieldCount is the number of fields across the presenter's
	// response schema — the basis for the token-economics risk tier.
	SchemaFieldCount int
	// UnboundedCollection is true when the presenter's response contains
	// a collection with no declared upper bound.
	UnboundedCollection bool
	// SuggestedActions lists the other tool names this tool's presenter
	// suggests via suggestActions blocks (affordance topology).
	SuggestedActions []string
	// EmbeddedPresenterNames lists presenter names embedded within this
	// tool's own presenter output.
	EmbeddedPresenterNames []string
}

// SystemRule is one system-prompt rule contributed by a presenter. IsStatic
// is false the moment the rule's value passed through any function
// application, per the Open Question resolution in SPEC_FULL.md/DESIGN.md.
type SystemRule struct {
	Value    string
	IsStatic bool
}

// ToolBuilder is the duck-typed capability interface a collaborator
// implements to expose a tool to governance (§4.4). Any value exposing
// these methods can be materialized into a ToolContract — the core
// depends on nothing else about its shape.
type ToolBuilder interface {
	GetName() string
	GetDescription() string
	GetTags() []string
	GetActionNames() []string
	GetActionMetadata(action string) ActionMetadata
	BuildToolDefinition() ToolDefinition
	GetPresenterInfo() PresenterInfo
	GetMiddlewareChain() []string
	GetCognitiveGuardrails() CognitiveGuardrails
	GetStateSyncFingerprint() *string
	GetConcurrencyFingerprint() *string
	// GetHandlerSource returns the handler's source text for static
	// entitlement scanning, and whether it is available at all (a
	// builder need not carry source — e.g. a compiled binary's builder
	// may have none, in which case entitlements are all false per §4.4
	// step 6).
	GetHandlerSource() (source string, ok bool)
}

// PromptBuilder is the analogous capability interface for prompts, used
// by the capability lockfile engine (§4.7).
type PromptBuilder interface {
	GetName() string
	GetDescription() string
	GetTitle() string
	GetTags() []string
	GetArguments() []PromptArgument
	BuildPromptDefinition() any
	HasMiddleware() bool
	GetHydrationTimeout() *int
}

// PromptArgument is one named argument a prompt accepts.
type PromptArgument struct {
	Name string
}
