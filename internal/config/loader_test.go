package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MCP_FUSION_DATA-DIR", filepath.Join(t.TempDir(), "data"))
	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, "fusion.lock.json", cfg.LockfileName)
}

func TestLoadFromTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fusion.toml")
	body := `server-name = "demo-server"
data-dir = "` + filepath.Join(dir, "data") + `"

[attestation]
signer = "jwt"
secret-env = "DEMO_SECRET"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "demo-server", cfg.ServerName)
	require.Equal(t, "jwt", cfg.Attestation.Signer)
}

func TestLockfilePathJoinsDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/tmp/gov"
	require.Equal(t, "/tmp/gov/fusion.lock.json", cfg.LockfilePath())
}

func TestAttestationSecretRequiresEnv(t *testing.T) {
	cfg := Default()
	cfg.Attestation.SecretEnv = "MCP_FUSION_TEST_SECRET_UNSET"
	_, err := cfg.AttestationSecret()
	require.Error(t, err)
}
