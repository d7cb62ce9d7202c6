package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

func baseContract() contract.ToolContract {
	return contract.ToolContract{
		Surface: contract.Surface{
			Name:              "search_repositories",
			InputSchemaDigest: "digest-a",
			Tags:              []string{"read"},
			Actions: map[string]contract.ActionContract{
				"search": {
					Destructive:       false,
					ReadOnly:          true,
					Idempotent:        true,
					RequiredFields:    []string{"query"},
					InputSchemaDigest: "action-digest-a",
				},
			},
		},
		Behavior: contract.Behavior{
			SystemRulesFingerprint: "static:abc",
		},
		TokenEconomics: contract.TokenEconomics{
			InflationRisk: contract.InflationLow,
		},
	}
}

func TestDiff_NameChange_Breaking(t *testing.T) {
	before := baseContract()
	after := baseContract()
	after.Surface.Name = "search_repos_v2"

	result := Diff("search_repositories", before, after, "d1", "d2")
	require.NotEmpty(t, result.Deltas)
	assert.Equal(t, SeverityBreaking, result.MaxSeverity)
	assert.False(t, result.IsBackwardsCompatible)
	assert.True(t, result.DigestChanged)
}

func TestDiff_DescriptionChange_Cosmetic(t *testing.T) {
	before := baseContract()
	after := baseContract()
	d1, d2 := "old desc", "new desc"
	before.Surface.Description = &d1
	after.Surface.Description = &d2

	result := Diff("t", before, after, "d", "d")
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, SeverityCosmetic, result.Deltas[0].Severity)
	assert.True(t, result.IsBackwardsCompatible)
}

func TestDiff_ActionRemoved_Breaking(t *testing.T) {
	before := baseContract()
	after := baseContract()
	after.Surface.Actions = map[string]contract.ActionContract{}

	result := Diff("t", before, after, "d", "d")
	var found bool
	for _, d := range result.Deltas {
		if d.Field == "actions.search" && d.Severity == SeverityBreaking {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDiff_ActionReadOnlyTrueToFalse_Breaking(t *testing.T) {
	before := baseContract()
	after := baseContract()
	action := after.Surface.Actions["search"]
	action.ReadOnly = false
	after.Surface.Actions["search"] = action

	result := Diff("t", before, after, "d", "d")
	var found bool
	for _, d := range result.Deltas {
		if d.Field == "actions.search.readOnly" {
			found = true
			assert.Equal(t, SeverityBreaking, d.Severity)
		}
	}
	assert.True(t, found)
}

func TestDiff_RequiredFieldAdded_Breaking(t *testing.T) {
	before := baseContract()
	after := baseContract()
	action := after.Surface.Actions["search"]
	action.RequiredFields = []string{"query", "limit"}
	after.Surface.Actions["search"] = action

	result := Diff("t", before, after, "d", "d")
	var found bool
	for _, d := range result.Deltas {
		if d.Field == "actions.search.requiredFields" {
			found = true
			assert.Equal(t, SeverityBreaking, d.Severity)
		}
	}
	assert.True(t, found)
}

func TestDiff_InflationRiskEscalation_Breaking(t *testing.T) {
	before := baseContract()
	after := baseContract()
	after.TokenEconomics.InflationRisk = contract.InflationCritical

	result := Diff("t", before, after, "d", "d")
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, SeverityBreaking, result.Deltas[0].Severity)
}

func TestDiff_InflationRiskDeescalation_Safe(t *testing.T) {
	before := baseContract()
	before.TokenEconomics.InflationRisk = contract.InflationHigh
	after := baseContract()
	after.TokenEconomics.InflationRisk = contract.InflationLow

	result := Diff("t", before, after, "d", "d")
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, SeveritySafe, result.Deltas[0].Severity)
}

func TestDiff_CodeEvaluationGained_MentionsBlastRadius(t *testing.T) {
	before := baseContract()
	after := baseContract()
	after.Entitlements.CodeEvaluation = true

	result := Diff("t", before, after, "d", "d")
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, SeverityBreaking, result.Deltas[0].Severity)
	assert.Contains(t, result.Deltas[0].Description, "blast radius")
}

func TestDiff_EntitlementDropped_Safe(t *testing.T) {
	before := baseContract()
	before.Entitlements.Network = true
	after := baseContract()

	result := Diff("t", before, after, "d", "d")
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, SeveritySafe, result.Deltas[0].Severity)
}

func TestDiff_GuardrailTighterCap_Risky(t *testing.T) {
	before := baseContract()
	after := baseContract()
	a, b := 1000, 500
	before.Behavior.CognitiveGuardrails.EgressMaxBytes = &a
	after.Behavior.CognitiveGuardrails.EgressMaxBytes = &b

	result := Diff("t", before, after, "d", "d")
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, SeverityRisky, result.Deltas[0].Severity)
}

func TestDiff_GuardrailCapRemoved_Risky(t *testing.T) {
	before := baseContract()
	after := baseContract()
	a := 1000
	before.Behavior.CognitiveGuardrails.EgressMaxBytes = &a

	result := Diff("t", before, after, "d", "d")
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, SeverityRisky, result.Deltas[0].Severity)
}

func TestDiff_GuardrailRelaxedCap_Safe(t *testing.T) {
	before := baseContract()
	after := baseContract()
	a, b := 500, 1000
	before.Behavior.CognitiveGuardrails.EgressMaxBytes = &a
	after.Behavior.CognitiveGuardrails.EgressMaxBytes = &b

	result := Diff("t", before, after, "d", "d")
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, SeveritySafe, result.Deltas[0].Severity)
}

func TestDiff_NoChanges_EmptyDeltasCosmeticMax(t *testing.T) {
	c := baseContract()
	result := Diff("t", c, c, "same", "same")
	assert.Empty(t, result.Deltas)
	assert.Equal(t, SeverityCosmetic, result.MaxSeverity)
	assert.True(t, result.IsBackwardsCompatible)
	assert.False(t, result.DigestChanged)
}

func TestDiff_Ordering_SeverityDescendingThenCategoryThenField(t *testing.T) {
	before := baseContract()
	after := baseContract()
	after.Surface.Description = ptr("changed")
	after.Entitlements.Network = true
	after.Behavior.SystemRulesFingerprint = "dynamic:zzz"

	result := Diff("t", before, after, "d1", "d2")
	require.Len(t, result.Deltas, 3)
	assert.Equal(t, SeverityBreaking, result.Deltas[0].Severity)
	assert.Equal(t, SeverityRisky, result.Deltas[1].Severity)
	assert.Equal(t, SeverityCosmetic, result.Deltas[2].Severity)
}

func ptr(s string) *string { return &s }

func TestFormatReport_BeginsWithToolName(t *testing.T) {
	before := baseContract()
	after := baseContract()
	after.Surface.Name = "renamed"
	result := Diff("search_repositories", before, after, "a", "b")

	report := FormatReport(result)
	assert.Contains(t, report, "[search_repositories]")
	assert.Contains(t, report, "BREAKING")
}

func TestFormatDeltasAsXml_EmptyList(t *testing.T) {
	assert.Equal(t, "", FormatDeltasAsXml(nil))
}

func TestFormatDeltasAsXml_EscapesAndWraps(t *testing.T) {
	deltas := []Delta{{
		Category:    "surface",
		Field:       "description",
		Severity:    SeverityCosmetic,
		Description: `a <b> & "c"`,
	}}
	xml := FormatDeltasAsXml(deltas)
	assert.True(t, len(xml) > 0)
	assert.Contains(t, xml, "<contract_changes>")
	assert.Contains(t, xml, "</contract_changes>")
	assert.Contains(t, xml, `severity="COSMETIC"`)
	assert.Contains(t, xml, "&lt;b&gt;")
	assert.Contains(t, xml, "&amp;")
	assert.Contains(t, xml, "&quot;c&quot;")
}
