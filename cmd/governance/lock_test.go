package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockThenCheckRoundTrips(t *testing.T) {
	manifestPath := writeManifest(t, sampleManifestJSON)
	state := newTestState(t)

	lockCmd := newLockCmd(state)
	lockCmd.SetArgs([]string{"--manifest", manifestPath})
	var lockOut bytes.Buffer
	lockCmd.SetOut(&lockOut)
	require.NoError(t, lockCmd.Execute())

	_, err := os.Stat(state.cfg.LockfilePath())
	require.NoError(t, err)

	checkCmd := newCheckCmd(state)
	checkCmd.SetArgs([]string{"--manifest", manifestPath})
	var checkOut bytes.Buffer
	checkCmd.SetOut(&checkOut)
	require.NoError(t, checkCmd.Execute())
	require.Contains(t, checkOut.String(), `"OK": true`)
}

func TestCheckDetectsDrift(t *testing.T) {
	manifestPath := writeManifest(t, sampleManifestJSON)
	state := newTestState(t)

	lockCmd := newLockCmd(state)
	lockCmd.SetArgs([]string{"--manifest", manifestPath})
	lockCmd.SetOut(&bytes.Buffer{})
	require.NoError(t, lockCmd.Execute())

	driftedPath := filepath.Join(t.TempDir(), "drifted.json")
	require.NoError(t, os.WriteFile(driftedPath, []byte(`{
      "serverName": "acme-tools",
      "tools": [
        {
          "name": "search_docs",
          "description": "Completely rewritten description",
          "inputSchema": {"type": "object"}
        }
      ]
    }`), 0o644))

	checkCmd := newCheckCmd(state)
	checkCmd.SetArgs([]string{"--manifest", driftedPath})
	checkCmd.SetOut(&bytes.Buffer{})
	err := checkCmd.Execute()
	require.Error(t, err)
}
