package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/prdgraph/internal/session"
)

// FocusLabelTool handles the prd_focus_label MCP tool.
type FocusLabelTool struct {
	session *session.Session
}

// NewFocusLabelTool creates a FocusLabelTool.
func NewFocusLabelTool(s *session.Session) *FocusLabelTool {
	return &FocusLabelTool{session: s}
}

// Definition returns the MCP tool definition for prd_focus_label.
func (t *FocusLabelTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_focus_label",
		mcp.WithDescription(
			"Resolve a short human label for a set of node ids, e.g. 'Requirement: Export +2'. "+
				"Use it to tell the user what a conversation is focused on.",
		),
		mcp.WithString("node_ids",
			mcp.Required(),
			mcp.Description("Comma-separated node ids"),
		),
	)
}

// Handle processes the prd_focus_label tool call.
func (t *FocusLabelTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := listArg(req, "node_ids")
	if len(ids) == 0 {
		return mcp.NewToolResultError("'node_ids' is required"), nil
	}
	label := t.session.FocusLabel(ids)
	if label == nil {
		return mcp.NewToolResultError("none of the node ids exist in the document"), nil
	}
	return jsonResult(label)
}
