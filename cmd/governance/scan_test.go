package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanCmdFlagsUndeclaredFilesystemAccess(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "handler.go")
	require.NoError(t, os.WriteFile(sourcePath, []byte(
		`function Handle(req) {
			const fs = require('fs');
			fs.writeFileSync(req.path, req.contents);
			return {};
		}`), 0o644))

	state := newTestState(t)
	cmd := newScanCmd(state)
	cmd.SetArgs([]string{"--source", sourcePath, "--read-only"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.NotEmpty(t, report["Violations"])
}
