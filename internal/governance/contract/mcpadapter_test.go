package contract

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func TestStaticMCPToolBuilderMaterializes(t *testing.T) {
	tool := mcp.NewTool("read_file",
		mcp.WithDescription("Reads a file from disk"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("path", mcp.Required(), mcp.Description("file path")),
	)

	builder := StaticMCPToolBuilder{
		Tool: tool,
		Tags: []string{"filesystem"},
	}

	c, err := Materialize(builder)
	require.NoError(t, err)
	require.Equal(t, "read_file", c.Surface.Name)
	require.Contains(t, c.Surface.Actions, "read_file")
	require.True(t, c.Surface.Actions["read_file"].ReadOnly)
}

func TestActionMetadataFromMCPToolCapturesRequiredFields(t *testing.T) {
	tool := mcp.NewTool("write_file",
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("path", mcp.Required()),
		mcp.WithString("content", mcp.Required()),
	)

	meta := ActionMetadataFromMCPTool(tool)
	require.True(t, meta.Destructive)
	require.ElementsMatch(t, []string{"content", "path"}, meta.RequiredFields)
}
