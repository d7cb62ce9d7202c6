package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

func sampleContract(name string) contract.ToolContract {
	return contract.ToolContract{
		Surface: contract.Surface{
			Name:              name,
			InputSchemaDigest: "abc",
			Actions:           map[string]contract.ActionContract{},
		},
		Behavior: contract.Behavior{
			SystemRulesFingerprint: "static:xyz",
		},
		TokenEconomics: contract.TokenEconomics{
			InflationRisk: contract.InflationLow,
		},
	}
}

func TestComputeToolDigest_Deterministic(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	c := sampleContract("alpha")

	d1, err := ComputeToolDigest("alpha", c, now)
	require.NoError(t, err)
	d2, err := ComputeToolDigest("alpha", c, now)
	require.NoError(t, err)

	assert.Equal(t, d1.Digest, d2.Digest)
	assert.Len(t, d1.Digest, 64)
}

func TestComputeToolDigest_ChangesWhenContractChanges(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	c1 := sampleContract("alpha")
	c2 := sampleContract("alpha")
	c2.Surface.InputSchemaDigest = "different"

	d1, err := ComputeToolDigest("alpha", c1, now)
	require.NoError(t, err)
	d2, err := ComputeToolDigest("alpha", c2, now)
	require.NoError(t, err)

	assert.NotEqual(t, d1.Digest, d2.Digest)
	assert.NotEqual(t, d1.Components.Surface, d2.Components.Surface)
}

func TestComputeServerDigest_OrderIndependent(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	contracts := map[string]contract.ToolContract{
		"bravo": sampleContract("bravo"),
		"alpha": sampleContract("alpha"),
	}

	d1, err := ComputeServerDigest(contracts, now)
	require.NoError(t, err)
	d2, err := ComputeServerDigest(contracts, now)
	require.NoError(t, err)

	assert.Equal(t, d1.Digest, d2.Digest)
	assert.Len(t, d1.Tools, 2)
}

func TestCompareServerDigests_Partition(t *testing.T) {
	now := time.Unix(0, 0).UTC()

	before, err := ComputeServerDigest(map[string]contract.ToolContract{
		"alpha": sampleContract("alpha"),
		"bravo": sampleContract("bravo"),
	}, now)
	require.NoError(t, err)

	changedBravo := sampleContract("bravo")
	changedBravo.Surface.InputSchemaDigest = "mutated"

	after, err := ComputeServerDigest(map[string]contract.ToolContract{
		"alpha":   sampleContract("alpha"),
		"bravo":   changedBravo,
		"charlie": sampleContract("charlie"),
	}, now)
	require.NoError(t, err)

	result := CompareServerDigests(before, after)
	assert.Equal(t, []string{"charlie"}, result.Added)
	assert.Empty(t, result.Removed)
	assert.Equal(t, []string{"bravo"}, result.Changed)
	assert.Equal(t, []string{"alpha"}, result.Unchanged)
	assert.True(t, result.ServerDigestChanged)
}

func TestCompareServerDigests_Removed(t *testing.T) {
	now := time.Unix(0, 0).UTC()

	before, err := ComputeServerDigest(map[string]contract.ToolContract{
		"alpha": sampleContract("alpha"),
		"bravo": sampleContract("bravo"),
	}, now)
	require.NoError(t, err)

	after, err := ComputeServerDigest(map[string]contract.ToolContract{
		"alpha": sampleContract("alpha"),
	}, now)
	require.NoError(t, err)

	result := CompareServerDigests(before, after)
	assert.Equal(t, []string{"bravo"}, result.Removed)
	assert.Equal(t, []string{"alpha"}, result.Unchanged)
}

func TestCompareServerDigests_NoChange(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	contracts := map[string]contract.ToolContract{"alpha": sampleContract("alpha")}

	before, err := ComputeServerDigest(contracts, now)
	require.NoError(t, err)
	after, err := ComputeServerDigest(contracts, now)
	require.NoError(t, err)

	result := CompareServerDigests(before, after)
	assert.False(t, result.ServerDigestChanged)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Changed)
	assert.Equal(t, []string{"alpha"}, result.Unchanged)
}
