package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/prdgraph/internal/prd"
	"github.com/HendryAvila/prdgraph/internal/session"
)

// DiscoveryTool handles the prd_set_discovery_mode MCP tool.
type DiscoveryTool struct {
	session *session.Session
}

// NewDiscoveryTool creates a DiscoveryTool.
func NewDiscoveryTool(s *session.Session) *DiscoveryTool {
	return &DiscoveryTool{session: s}
}

// Definition returns the MCP tool definition for prd_set_discovery_mode.
func (t *DiscoveryTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_set_discovery_mode",
		mcp.WithDescription(
			"Set whether proposals may add new entities. 'off' limits proposals to updates "+
				"and links of existing entities; 'default' and 'on' allow adds. "+
				"Only change this when the user asks to.",
		),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("Discovery mode"),
			mcp.Enum(string(prd.DiscoveryOff), string(prd.DiscoveryDefault), string(prd.DiscoveryOn)),
		),
	)
}

// Handle processes the prd_set_discovery_mode tool call.
func (t *DiscoveryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := req.GetString("mode", "")
	if mode == "" {
		return mcp.NewToolResultError("'mode' is required"), nil
	}
	if err := t.session.SetDiscoveryMode(prd.DiscoveryMode(mode)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Discovery mode set to %s.", mode)), nil
}
