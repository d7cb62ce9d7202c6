package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleManifestJSON = `{
  "serverName": "acme-tools",
  "tools": [
    {
      "name": "search_docs",
      "description": "Search the internal documentation index",
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

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadManifestParsesEntries(t *testing.T) {
	path := writeManifest(t, sampleManifestJSON)

	m, err := loadManifest(path)
	require.NoError(t, err)
	require.Equal(t, "acme-tools", m.ServerName)
	require.Len(t, m.Tools, 2)
	require.Equal(t, "search_docs", m.Tools[0].Name)
	require.True(t, m.Tools[0].ReadOnly)
	require.True(t, m.Tools[1].Destructive)
}

func TestLoadManifestRejectsMissingFile(t *testing.T) {
	_, err := loadManifest(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestManifestBuildersProduceToolBuilders(t *testing.T) {
	path := writeManifest(t, sampleManifestJSON)

	m, err := loadManifest(path)
	require.NoError(t, err)

	builders, err := m.builders()
	require.NoError(t, err)
	require.Len(t, builders, 2)

	source, ok := builders[1].GetHandlerSource()
	require.True(t, ok)
	require.Contains(t, source, "os.Remove")
}

func TestCompileManifestMaterializesContracts(t *testing.T) {
	path := writeManifest(t, sampleManifestJSON)

	contracts, err := compileManifest(path)
	require.NoError(t, err)
	require.Contains(t, contracts, "search_docs")
	require.Contains(t, contracts, "delete_doc")

	searchContract := contracts["search_docs"]
	require.Equal(t, []string{"docs", "search"}, searchContract.Surface.Tags)
	require.Contains(t, searchContract.SortedActionNames(), "search_docs")
}
