package lockfile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

func sampleContracts() map[string]contract.ToolContract {
	return map[string]contract.ToolContract{
		"search_repositories": {
			Surface: contract.Surface{
				Name:              "search_repositories",
				Tags:              []string{"read", "search"},
				InputSchemaDigest: "digest-a",
				Actions: map[string]contract.ActionContract{
					"search": {ReadOnly: true, InputSchemaDigest: "action-digest"},
					"delete": {Destructive: true, InputSchemaDigest: "action-digest-2"},
				},
			},
			TokenEconomics: contract.TokenEconomics{InflationRisk: contract.InflationLow},
		},
	}
}

func TestGenerateLockfile_Shape(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	l, err := GenerateLockfile("my-server", sampleContracts(), "1.0.0", Options{}, now)
	require.NoError(t, err)

	assert.Equal(t, 1, l.LockfileVersion)
	assert.Equal(t, "my-server", l.ServerName)
	assert.True(t, strings.HasPrefix(l.IntegrityDigest, "sha256:"))
	require.Contains(t, l.Capabilities.Tools, "search_repositories")

	record := l.Capabilities.Tools["search_repositories"]
	assert.Equal(t, []string{"delete"}, record.Behavior.DestructiveActions)
	assert.Equal(t, []string{"search"}, record.Behavior.ReadOnlyActions)
	assert.True(t, strings.HasPrefix(record.IntegrityDigest, "sha256:"))
}

func TestGenerateLockfile_Deterministic(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	l1, err := GenerateLockfile("my-server", sampleContracts(), "1.0.0", Options{}, now)
	require.NoError(t, err)
	l2, err := GenerateLockfile("my-server", sampleContracts(), "1.0.0", Options{}, now)
	require.NoError(t, err)

	assert.Equal(t, l1.IntegrityDigest, l2.IntegrityDigest)
}

func TestSerializeLockfile_KeySortedWithTrailingNewline(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	l, err := GenerateLockfile("my-server", sampleContracts(), "1.0.0", Options{}, now)
	require.NoError(t, err)

	text, err := SerializeLockfile(l)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.True(t, strings.HasPrefix(text, `{"capabilities"`), "keys must sort before 'lockfileVersion' alphabetically")
}

func TestParseLockfile_RoundTrip(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	l, err := GenerateLockfile("my-server", sampleContracts(), "1.0.0", Options{}, now)
	require.NoError(t, err)

	text, err := SerializeLockfile(l)
	require.NoError(t, err)

	parsed, ok := ParseLockfile(text)
	require.True(t, ok)
	assert.Equal(t, l.ServerName, parsed.ServerName)
	assert.Equal(t, l.IntegrityDigest, parsed.IntegrityDigest)
}

func TestParseLockfile_RejectsWrongVersion(t *testing.T) {
	_, ok := ParseLockfile(`{"lockfileVersion": 2, "serverName": "x", "fusionVersion": "1.0.0", "generatedAt": "2024-01-01T00:00:00Z", "integrityDigest": "sha256:abc", "capabilities": {"tools": {}}}`)
	assert.False(t, ok)
}

func TestParseLockfile_RejectsMissingField(t *testing.T) {
	_, ok := ParseLockfile(`{"lockfileVersion": 1, "serverName": "x"}`)
	assert.False(t, ok)
}

func TestParseLockfile_RejectsInvalidJson(t *testing.T) {
	_, ok := ParseLockfile(`not json`)
	assert.False(t, ok)
}

func TestCheckLockfile_UpToDate(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	contracts := sampleContracts()
	l, err := GenerateLockfile("my-server", contracts, "1.0.0", Options{}, now)
	require.NoError(t, err)

	result, err := CheckLockfile(l, contracts, CheckLockfileOptions{}, now)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Contains(t, result.Message, "up to date")
}

func TestCheckLockfile_DetectsAddedAndRemoved(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	contracts := sampleContracts()
	l, err := GenerateLockfile("my-server", contracts, "1.0.0", Options{}, now)
	require.NoError(t, err)

	current := sampleContracts()
	delete(current, "search_repositories")
	current["new_tool"] = contract.ToolContract{
		Surface: contract.Surface{Name: "new_tool", Actions: map[string]contract.ActionContract{}},
	}

	result, err := CheckLockfile(l, current, CheckLockfileOptions{}, now)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "stale")
	assert.Equal(t, []string{"new_tool"}, result.Added)
	assert.Equal(t, []string{"search_repositories"}, result.Removed)
}

func TestCheckLockfile_DetectsChanged(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	contracts := sampleContracts()
	l, err := GenerateLockfile("my-server", contracts, "1.0.0", Options{}, now)
	require.NoError(t, err)

	changed := sampleContracts()
	action := changed["search_repositories"].Surface.Actions["search"]
	action.InputSchemaDigest = "mutated"
	changed["search_repositories"].Surface.Actions["search"] = action

	result, err := CheckLockfile(l, changed, CheckLockfileOptions{}, now)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, []string{"search_repositories"}, result.Changed)
}

func TestValidateFusionVersion(t *testing.T) {
	assert.NoError(t, ValidateFusionVersion("1.2.3"))
	assert.NoError(t, ValidateFusionVersion("v1.2.3"))
	assert.Error(t, ValidateFusionVersion("not-a-version"))
}
