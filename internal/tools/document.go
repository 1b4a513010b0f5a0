package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/prdgraph/internal/session"
)

const formatYAML = "yaml"

// DocumentTool handles the prd_get_document MCP tool.
type DocumentTool struct {
	session *session.Session
}

// NewDocumentTool creates a DocumentTool.
func NewDocumentTool(s *session.Session) *DocumentTool {
	return &DocumentTool{session: s}
}

// Definition returns the MCP tool definition for prd_get_document.
func (t *DocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_get_document",
		mcp.WithDescription("Get the complete PRD document as structured data."),
		mcp.WithString("format",
			mcp.Description("Output format: 'yaml' (default) or 'json'"),
			mcp.Enum(formatYAML, formatJSON),
		),
	)
}

// Handle processes the prd_get_document tool call.
func (t *DocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := t.session.Snapshot()
	if req.GetString("format", formatYAML) == formatJSON {
		return jsonResult(doc)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
