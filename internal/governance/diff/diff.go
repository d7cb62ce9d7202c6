// Package diff implements the structural contract diff engine (§4.6): it
// walks two ToolContract values field by field, classifies every change by
// severity, and formats the result as a human report or an XML fragment
// for the self-healing enricher.
package diff

import (
	"sort"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

// Severity orders how disruptive a contract change is to an agent already
// relying on the previous contract.
type Severity string

const (
	SeverityCosmetic Severity = "COSMETIC"
	SeveritySafe     Severity = "SAFE"
	SeverityRisky    Severity = "RISKY"
	SeverityBreaking Severity = "BREAKING"
)

// rank orders Severity for descending sort and max-severity comparisons.
func (s Severity) rank() int {
	switch s {
	case SeverityCosmetic:
		return 0
	case SeveritySafe:
		return 1
	case SeverityRisky:
		return 2
	case SeverityBreaking:
		return 3
	default:
		return -1
	}
}

// Delta is one classified field-level change between two contracts.
type Delta struct {
	Category    string   `json:"category"`
	Field       string   `json:"field"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Result is the full structural diff between two tool contracts (§4.6).
type Result struct {
	ToolName              string  `json:"toolName"`
	Deltas                []Delta `json:"deltas"`
	MaxSeverity           Severity `json:"maxSeverity"`
	IsBackwardsCompatible bool    `json:"isBackwardsCompatible"`
	DigestChanged         bool    `json:"digestChanged"`
}

// Diff walks before/after contracts and produces an ordered, classified
// delta list (§4.6). digestBefore/digestAfter are the tool digests (§4.5)
// used only to populate DigestChanged.
func Diff(toolName string, before, after contract.ToolContract, digestBefore, digestAfter string) Result {
	var deltas []Delta

	deltas = append(deltas, diffSurface(before.Surface, after.Surface)...)
	deltas = append(deltas, diffBehavior(before.Behavior, after.Behavior)...)
	deltas = append(deltas, diffTokenEconomics(before.TokenEconomics, after.TokenEconomics)...)
	deltas = append(deltas, diffEntitlements(before.Entitlements, after.Entitlements)...)

	sortDeltas(deltas)

	max := maxSeverity(deltas)
	return Result{
		ToolName:              toolName,
		Deltas:                deltas,
		MaxSeverity:           max,
		IsBackwardsCompatible: max == SeveritySafe || max == SeverityCosmetic,
		DigestChanged:         digestBefore != digestAfter,
	}
}

func maxSeverity(deltas []Delta) Severity {
	max := SeverityCosmetic
	for _, d := range deltas {
		if d.Severity.rank() > max.rank() {
			max = d.Severity
		}
	}
	return max
}

// sortDeltas orders by severity descending, then category, then field
// (§4.6 "Output ordering").
func sortDeltas(deltas []Delta) {
	sort.SliceStable(deltas, func(i, j int) bool {
		a, b := deltas[i], deltas[j]
		if a.Severity.rank() != b.Severity.rank() {
			return a.Severity.rank() > b.Severity.rank()
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Field < b.Field
	})
}

func diffSurface(before, after contract.Surface) []Delta {
	var deltas []Delta

	if before.Name != after.Name {
		deltas = append(deltas, Delta{"surface", "name", SeverityBreaking, "tool name changed from " + before.Name + " to " + after.Name})
	}
	if before.InputSchemaDigest != after.InputSchemaDigest {
		deltas = append(deltas, Delta{"surface", "inputSchemaDigest", SeverityBreaking, "input schema changed"})
	}
	if !equalOptionalString(before.Description, after.Description) {
		deltas = append(deltas, Delta{"surface", "description", SeverityCosmetic, "description changed"})
	}

	for _, tag := range after.Tags {
		if !containsString(before.Tags, tag) {
			deltas = append(deltas, Delta{"surface", "tags", SeveritySafe, "tag added: " + tag})
		}
	}
	for _, tag := range before.Tags {
		if !containsString(after.Tags, tag) {
			deltas = append(deltas, Delta{"surface", "tags", SeverityCosmetic, "tag removed: " + tag})
		}
	}

	deltas = append(deltas, diffActions(before.Actions, after.Actions)...)
	return deltas
}

func diffActions(before, after map[string]contract.ActionContract) []Delta {
	var deltas []Delta

	for name, a := range after {
		b, existed := before[name]
		if !existed {
			deltas = append(deltas, Delta{"surface", "actions." + name, SeveritySafe, "action added: " + name})
			continue
		}
		deltas = append(deltas, diffAction(name, b, a)...)
	}
	for name := range before {
		if _, stillExists := after[name]; !stillExists {
			deltas = append(deltas, Delta{"surface", "actions." + name, SeverityBreaking, "action removed: " + name})
		}
	}

	return deltas
}

func diffAction(name string, before, after contract.ActionContract) []Delta {
	var deltas []Delta
	field := func(suffix string) string { return "actions." + name + "." + suffix }

	if before.Destructive != after.Destructive {
		sev := SeveritySafe
		if !before.Destructive && after.Destructive {
			sev = SeverityBreaking
		}
		deltas = append(deltas, Delta{"surface", field("destructive"), sev, "destructive changed for action " + name})
	}
	if before.ReadOnly != after.ReadOnly {
		sev := SeveritySafe
		if before.ReadOnly && !after.ReadOnly {
			sev = SeverityBreaking
		}
		deltas = append(deltas, Delta{"surface", field("readOnly"), sev, "readOnly changed for action " + name})
	}
	if before.Idempotent != after.Idempotent {
		sev := SeveritySafe
		if before.Idempotent && !after.Idempotent {
			sev = SeverityRisky
		}
		deltas = append(deltas, Delta{"surface", field("idempotent"), sev, "idempotent changed for action " + name})
	}

	for _, f := range after.RequiredFields {
		if !containsString(before.RequiredFields, f) {
			deltas = append(deltas, Delta{"surface", field("requiredFields"), SeverityBreaking, "required field added to " + name + ": " + f})
		}
	}
	for _, f := range before.RequiredFields {
		if !containsString(after.RequiredFields, f) {
			deltas = append(deltas, Delta{"surface", field("requiredFields"), SeveritySafe, "required field removed from " + name + ": " + f})
		}
	}

	if before.InputSchemaDigest != after.InputSchemaDigest {
		deltas = append(deltas, Delta{"surface", field("inputSchemaDigest"), SeverityBreaking, "input schema changed for action " + name})
	}
	if !equalOptionalString(before.PresenterName, after.PresenterName) {
		deltas = append(deltas, Delta{"surface", field("presenterName"), SeverityRisky, "presenter changed for action " + name})
	}

	return deltas
}

func diffBehavior(before, after contract.Behavior) []Delta {
	var deltas []Delta

	if !equalOptionalString(before.EgressSchemaDigest, after.EgressSchemaDigest) {
		deltas = append(deltas, Delta{"behavior.egress", "egressSchemaDigest", SeverityBreaking, "egress schema changed"})
	}
	if before.SystemRulesFingerprint != after.SystemRulesFingerprint {
		deltas = append(deltas, Delta{"behavior.egress", "systemRulesFingerprint", SeverityRisky, "system rules changed"})
	}

	deltas = append(deltas, diffGuardrails(before.CognitiveGuardrails, after.CognitiveGuardrails)...)

	if !equalStringSlices(before.MiddlewareChain, after.MiddlewareChain) {
		deltas = append(deltas, Delta{"behavior.middleware", "middlewareChain", SeverityRisky, "middleware chain changed"})
	}
	if !equalOptionalString(before.ConcurrencyFingerprint, after.ConcurrencyFingerprint) {
		deltas = append(deltas, Delta{"behavior.middleware", "concurrencyFingerprint", SeverityRisky, "concurrency fingerprint changed"})
	}
	if !equalOptionalString(before.StateSyncFingerprint, after.StateSyncFingerprint) {
		deltas = append(deltas, Delta{"behavior.middleware", "stateSyncFingerprint", SeverityRisky, "state sync fingerprint changed"})
	}
	if !equalStringSlices(before.AffordanceTopology, after.AffordanceTopology) {
		deltas = append(deltas, Delta{"behavior.topology", "affordanceTopology", SeverityRisky, "affordance topology changed"})
	}
	if !equalStringSlices(before.EmbeddedPresenters, after.EmbeddedPresenters) {
		deltas = append(deltas, Delta{"behavior.topology", "embeddedPresenters", SeverityRisky, "embedded presenters changed"})
	}

	return deltas
}

func diffGuardrails(before, after contract.CognitiveGuardrails) []Delta {
	var deltas []Delta

	if sev, ok := diffOptionalIntTighterWorse(before.EgressMaxBytes, after.EgressMaxBytes); ok {
		deltas = append(deltas, Delta{"behavior.guardrails", "cognitiveGuardrails.egressMaxBytes", sev, "egress byte cap changed"})
	}
	if sev, ok := diffOptionalIntTighterWorse(before.AgentLimitMax, after.AgentLimitMax); ok {
		deltas = append(deltas, Delta{"behavior.guardrails", "cognitiveGuardrails.agentLimitMax", sev, "agent item-limit cap changed"})
	}

	return deltas
}

// diffOptionalIntTighterWorse implements the "tighter cap OR cap removed →
// RISKY; relaxed → SAFE" rule shared by egressMaxBytes and agentLimitMax.
func diffOptionalIntTighterWorse(before, after *int) (Severity, bool) {
	switch {
	case before == nil && after == nil:
		return "", false
	case before != nil && after == nil:
		return SeverityRisky, true
	case before == nil && after != nil:
		return SeveritySafe, true
	case *before == *after:
		return "", false
	case *after < *before:
		return SeverityRisky, true
	default:
		return SeveritySafe, true
	}
}

func diffTokenEconomics(before, after contract.TokenEconomics) []Delta {
	var deltas []Delta

	if before.InflationRisk != after.InflationRisk {
		sev := SeveritySafe
		if before.InflationRisk.Escalated(after.InflationRisk) {
			sev = SeverityBreaking
		}
		deltas = append(deltas, Delta{"tokenEconomics", "inflationRisk", sev, "inflation risk changed from " + string(before.InflationRisk) + " to " + string(after.InflationRisk)})
	}

	if before.UnboundedCollection != after.UnboundedCollection {
		sev := SeveritySafe
		if !before.UnboundedCollection && after.UnboundedCollection {
			sev = SeverityBreaking
		}
		deltas = append(deltas, Delta{"tokenEconomics", "unboundedCollection", sev, "unbounded collection flag changed"})
	}

	return deltas
}

func diffEntitlements(before, after contract.Entitlements) []Delta {
	var deltas []Delta

	for _, cat := range contract.AllEntitlementCategories {
		b, a := before.Get(cat), after.Get(cat)
		if b == a {
			continue
		}
		if !b && a {
			desc := "entitlement gained: " + string(cat)
			if cat == contract.EntitlementCodeEvaluation {
				desc = "entitlement gained: codeEvaluation; blast radius is unbounded"
			}
			deltas = append(deltas, Delta{"entitlements", string(cat), SeverityBreaking, desc})
		} else {
			deltas = append(deltas, Delta{"entitlements", string(cat), SeveritySafe, "entitlement dropped: " + string(cat)})
		}
	}

	return deltas
}

func equalOptionalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsString(list []string, needle string) bool {
	for _, s := range list {
		if s == needle {
			return true
		}
	}
	return false
}
