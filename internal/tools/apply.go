package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/session"
)

// ApplyTool handles the prd_apply_changes MCP tool.
type ApplyTool struct {
	session *session.Session
}

// NewApplyTool creates an ApplyTool.
func NewApplyTool(s *session.Session) *ApplyTool {
	return &ApplyTool{session: s}
}

// Definition returns the MCP tool definition for prd_apply_changes. The
// change batch JSON Schema is embedded in the description.
func (t *ApplyTool) Definition() mcp.Tool {
	desc := "Apply a batch of add/update/link changes to the PRD. Changes run in order and " +
		"each one succeeds or is skipped on its own; the result lists how many were applied " +
		"and why the others were skipped. Adds are refused while discovery mode is off. " +
		"Give new nodes an id when later changes in the same batch link to them."
	if schema, err := contract.SchemaJSON(); err == nil {
		desc += "\n\nBatch JSON Schema:\n" + string(schema)
	}

	return mcp.NewTool("prd_apply_changes",
		mcp.WithDescription(desc),
		mcp.WithString("batch",
			mcp.Required(),
			mcp.Description("The change batch as a JSON object (or its JSON text). "+
				"A bare array is read as the list of changes."),
		),
	)
}

// Handle processes the prd_apply_changes tool call.
func (t *ApplyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["batch"]
	if !ok || raw == nil {
		return mcp.NewToolResultError("'batch' is required"), nil
	}

	res := t.session.Apply(raw)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Applied %d change(s), skipped %d.\n", res.Applied, res.Skipped())
	if len(res.Errors) > 0 {
		sb.WriteString("\nSkipped:\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}
