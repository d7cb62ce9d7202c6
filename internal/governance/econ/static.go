// Package econ implements the token economics profiler (§4.2): a static,
// schema-shape-based cost estimate usable before any content exists, and a
// runtime block profiler that accumulates real token counts over an
// emitted content-block sequence.
package econ

import (
	"math"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

// charsPerToken is the heuristic used for the static per-record estimate,
// before any real content exists to tokenize (§4.2).
const charsPerToken = 3.5

// StaticProfile is the static egress-cost profile for one tool (§4.2).
type StaticProfile struct {
	ToolName                 string
	EstimatedTokensPerRecord int
	Bounded                  bool
	InflationRisk            contract.InflationRisk
	Remediations             []string
}

// ProfileStatic produces a StaticProfile from a tool's declared shape.
func ProfileStatic(toolName string, fieldKeys []string, agentLimitMax, egressMaxBytes *int, sampleRecordText string) StaticProfile {
	bounded := agentLimitMax != nil || egressMaxBytes != nil
	fieldCount := len(fieldKeys)

	risk := contract.ClassifyInflationRisk(fieldCount, !bounded)

	return StaticProfile{
		ToolName:                 toolName,
		EstimatedTokensPerRecord: estimateTokens(sampleRecordText),
		Bounded:                  bounded,
		InflationRisk:            risk,
		Remediations:             remediationsFor(risk, bounded, fieldCount),
	}
}

// estimateTokens implements the chars/3.5 rounded-up heuristic; an empty
// string estimates to zero tokens.
func estimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return int(math.Ceil(float64(len(text)) / charsPerToken))
}

func remediationsFor(risk contract.InflationRisk, bounded bool, fieldCount int) []string {
	var out []string
	if !bounded {
		out = append(out, "declare an agentLimitMax or egressMaxBytes guardrail to bound egress size")
	}
	if fieldCount > 20 {
		out = append(out, "split the response schema into a summary view and a detail-on-demand action")
	}
	switch risk {
	case contract.InflationHigh, contract.InflationCritical:
		out = append(out, "consider a presenter that paginates or truncates large collections")
	}
	return out
}
