package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/review"
)

// TestReviewModelBuildsFromDiffResult exercises the data path newReviewCmd
// feeds into the interactive program, without driving the bubbletea event
// loop itself (no terminal in CI).
func TestReviewModelBuildsFromDiffResult(t *testing.T) {
	beforePath := writeManifest(t, sampleManifestJSON)

	afterDir := t.TempDir()
	afterPath := filepath.Join(afterDir, "after.json")
	require.NoError(t, os.WriteFile(afterPath, []byte(afterManifestJSON), 0o644))

	results, err := diffManifests(beforePath, afterPath, "search_docs")
	require.NoError(t, err)
	require.Len(t, results, 1)

	model := review.New(results[0])
	require.NotNil(t, model)
}
