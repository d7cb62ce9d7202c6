// Package selfheal implements the contract-aware self-healing enricher
// (§4.9): it injects a <contract_awareness> block describing recent
// behavioral-contract drift into a tool's raw validation error payload,
// giving a calling agent the context it needs to self-correct.
package selfheal

import (
	"strings"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/diff"
)

const (
	qualifyingSeverityFloor = diff.SeverityRisky
	defaultMaxDeltas        = 10
	closingTag              = "</validation_error>"
)

// Config configures the enricher for one or more tools (§4.9).
type Config struct {
	ActiveDeltas         map[string]diff.Result
	IncludeAllSeverities bool
	MaxDeltasPerError    int
}

// Result is the outcome of one enrichment call.
type Result struct {
	EnrichedError string
	Injected      bool
	DeltaCount    int
}

// Enrich implements §4.9 steps 1-4 for a single (toolName, action) pair.
func Enrich(rawError, toolName, action string, cfg Config) Result {
	result, ok := cfg.ActiveDeltas[toolName]
	if !ok {
		return Result{EnrichedError: rawError, Injected: false, DeltaCount: 0}
	}

	qualifying := selectQualifyingDeltas(result.Deltas, cfg.IncludeAllSeverities)
	if len(qualifying) == 0 {
		return Result{EnrichedError: rawError, Injected: false, DeltaCount: 0}
	}

	maxDeltas := cfg.MaxDeltasPerError
	if maxDeltas <= 0 {
		maxDeltas = defaultMaxDeltas
	}
	if len(qualifying) > maxDeltas {
		qualifying = qualifying[:maxDeltas]
	}

	block := buildAwarenessBlock(qualifying)
	enriched := injectBeforeClosingTag(rawError, block)

	return Result{EnrichedError: enriched, Injected: true, DeltaCount: len(qualifying)}
}

func selectQualifyingDeltas(deltas []diff.Delta, includeAll bool) []diff.Delta {
	if includeAll {
		return deltas
	}
	var out []diff.Delta
	for _, d := range deltas {
		if severityAtLeast(d.Severity, qualifyingSeverityFloor) {
			out = append(out, d)
		}
	}
	return out
}

func severityAtLeast(s, floor diff.Severity) bool {
	rank := map[diff.Severity]int{
		diff.SeverityCosmetic: 0,
		diff.SeveritySafe:     1,
		diff.SeverityRisky:    2,
		diff.SeverityBreaking: 3,
	}
	return rank[s] >= rank[floor]
}

func buildAwarenessBlock(deltas []diff.Delta) string {
	var b strings.Builder
	b.WriteString("<contract_awareness>")
	b.WriteString("this tool's behavioral contract has changed since the agent last observed it: ")
	b.WriteString(diff.FormatDeltasAsXml(deltas))
	b.WriteString("</contract_awareness>")
	return b.String()
}

func injectBeforeClosingTag(raw, block string) string {
	idx := strings.LastIndex(raw, closingTag)
	if idx == -1 {
		return raw + block
	}
	return raw[:idx] + block + raw[idx:]
}

// ToolEnhancer is the curried, per-tool variant of Enrich (§4.9 closing
// paragraph).
type ToolEnhancer func(rawError, action string) string

// CreateToolEnhancer returns a ToolEnhancer bound to one tool name. When
// the tool has no active deltas at all, it returns the identity function
// so a caller can cheaply detect "nothing to enrich" by reference
// equality against identityEnhancer.
func CreateToolEnhancer(toolName string, cfg Config) ToolEnhancer {
	if _, ok := cfg.ActiveDeltas[toolName]; !ok {
		return identityEnhancer
	}
	return func(rawError, action string) string {
		return Enrich(rawError, toolName, action, cfg).EnrichedError
	}
}

func identityEnhancer(rawError, action string) string { return rawError }
