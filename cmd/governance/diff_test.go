package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const afterManifestJSON = `{
  "serverName": "acme-tools",
  "tools": [
    {
      "name": "search_docs",
      "description": "Search the internal documentation index and the web",
      "tags": ["docs", "search"],
      "inputSchema": {
        "type": "object",
        "properties": {"query": {"type": "string"}},
        "required": ["query"]
      },
      "readOnly": true,
      "handlerSource": "func Handle(ctx context.Context, req Request) (Response, error) { return docs.Search(req.Query) }"
    },
    {
      "name": "delete_doc",
      "description": "Delete a document by id",
      "destructive": true,
      "inputSchema": {
        "type": "object",
        "properties": {"id": {"type": "string"}},
        "required": ["id"]
      },
      "handlerSource": "func Handle(ctx context.Context, req Request) (Response, error) { os.Remove(req.ID); return Response{}, nil }"
    }
  ]
}`

func TestDiffCmdClassifiesDescriptionChangeAsCosmetic(t *testing.T) {
	beforePath := writeManifest(t, sampleManifestJSON)

	afterDir := t.TempDir()
	afterPath := filepath.Join(afterDir, "after.json")
	require.NoError(t, os.WriteFile(afterPath, []byte(afterManifestJSON), 0o644))

	state := newTestState(t)
	cmd := newDiffCmd(state)
	cmd.SetArgs([]string{"--before", beforePath, "--after", afterPath, "--tool", "search_docs"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 1)
	require.Equal(t, "search_docs", results[0]["toolName"])
	require.Equal(t, "COSMETIC", results[0]["maxSeverity"])
}
