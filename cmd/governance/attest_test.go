package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttestCmdSignsServerDigest(t *testing.T) {
	manifestPath := writeManifest(t, sampleManifestJSON)
	state := newTestState(t)
	t.Setenv(state.cfg.Attestation.SecretEnv, "unit-test-secret-value")

	cmd := newAttestCmd(state)
	cmd.SetArgs([]string{"--manifest", manifestPath})

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	var decoded struct {
		Result map[string]interface{} `json:"result"`
		Trust  map[string]interface{} `json:"trust"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.NotEmpty(t, decoded.Result)
	require.NotEmpty(t, decoded.Trust)
}

func TestAttestCmdFailsWithoutSecret(t *testing.T) {
	manifestPath := writeManifest(t, sampleManifestJSON)
	state := newTestState(t)

	cmd := newAttestCmd(state)
	cmd.SetArgs([]string{"--manifest", manifestPath})
	cmd.SetOut(&bytes.Buffer{})

	require.Error(t, cmd.Execute())
}
