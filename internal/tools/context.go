package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/prdgraph/internal/knowledge"
	"github.com/HendryAvila/prdgraph/internal/session"
)

// ContextTool handles the prd_get_context MCP tool.
type ContextTool struct {
	session *session.Session
}

// NewContextTool creates a ContextTool.
func NewContextTool(s *session.Session) *ContextTool {
	return &ContextTool{session: s}
}

// Definition returns the MCP tool definition for prd_get_context.
func (t *ContextTool) Definition() mcp.Tool {
	sections := make([]string, 0, len(knowledge.Sections()))
	for _, s := range knowledge.Sections() {
		sections = append(sections, string(s))
	}

	return mcp.NewTool("prd_get_context",
		mcp.WithDescription(
			"Get a focused slice of the PRD knowledge graph plus the actor and term policies. "+
				"Call this BEFORE proposing changes with prd_apply_changes: only reference ids "+
				"that appear in the returned nodes, and never introduce names on a blocklist. "+
				"Focus on a section, or on specific node ids to see their direct neighbours.",
		),
		mcp.WithString("section",
			mcp.Description("Section to focus on (default: general, a balanced sample of every section)"),
			mcp.Enum(sections...),
		),
		mcp.WithString("node_ids",
			mcp.Description("Comma-separated node ids to focus on. Takes precedence over section."),
		),
		mcp.WithString("detail_level",
			mcp.Description(
				"Level of detail: 'summary' (ids, titles and blocklists, minimal tokens), "+
					"'standard' (default, truncated descriptions, edges and policies), "+
					"'full' (untruncated descriptions, edges and policies).",
			),
			mcp.Enum(knowledge.DetailLevelValues()...),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default) or 'json' (the raw context pack)"),
			mcp.Enum(formatMarkdown, formatJSON),
		),
	)
}

// Handle processes the prd_get_context tool call.
func (t *ContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	focus := knowledge.DefaultFocus()
	if ids := listArg(req, "node_ids"); len(ids) > 0 {
		focus = knowledge.Focus{NodeIDs: ids}
	} else {
		section, err := knowledge.ParseSection(req.GetString("section", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		focus.Section = section
	}

	pack := t.session.ContextPack(&focus)

	if req.GetString("format", formatMarkdown) == formatJSON {
		return jsonResult(pack)
	}

	detail := knowledge.ParseDetailLevel(req.GetString("detail_level", ""))
	text := knowledge.Render(pack, detail)

	var sb strings.Builder
	sb.WriteString(text)
	if label := t.session.FocusLabel(focus.NodeIDs); label != nil {
		fmt.Fprintf(&sb, "\nFocus label: %s\n", label.Label)
	}
	sb.WriteString(knowledge.TokenFooter(knowledge.EstimateTokens(sb.String())))
	return mcp.NewToolResultText(sb.String()), nil
}
