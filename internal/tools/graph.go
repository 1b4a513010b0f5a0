package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/prdgraph/internal/knowledge"
	"github.com/HendryAvila/prdgraph/internal/session"
)

// GraphTool handles the prd_get_graph MCP tool.
type GraphTool struct {
	session *session.Session
}

// NewGraphTool creates a GraphTool.
func NewGraphTool(s *session.Session) *GraphTool {
	return &GraphTool{session: s}
}

// Definition returns the MCP tool definition for prd_get_graph.
func (t *GraphTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_get_graph",
		mcp.WithDescription(
			"Get the complete, unfiltered knowledge graph of the PRD. Large documents produce "+
				"large graphs; prefer prd_get_context unless you need every node.",
		),
		mcp.WithString("node_type",
			mcp.Description("Only list nodes of this type (edges are still listed in full)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default) or 'json'"),
			mcp.Enum(formatMarkdown, formatJSON),
		),
	)
}

// Handle processes the prd_get_graph tool call.
func (t *GraphTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g := t.session.Graph()

	if raw := req.GetString("node_type", ""); raw != "" {
		typ := knowledge.NodeType(raw)
		if !knowledge.ValidNodeType(typ) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown node type %q", raw)), nil
		}
		nodes := make([]knowledge.Node, 0, len(g.Nodes))
		for _, n := range g.Nodes {
			if n.Type == typ {
				nodes = append(nodes, n)
			}
		}
		g.Nodes = nodes
	}

	if req.GetString("format", formatMarkdown) == formatJSON {
		return jsonResult(g)
	}
	return mcp.NewToolResultText(formatGraph(g)), nil
}

func formatGraph(g knowledge.Graph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Nodes (%d)\n\n", len(g.Nodes))
	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "- [%s] `%s` %s\n", n.Type, n.ID, n.Title)
	}
	fmt.Fprintf(&sb, "\n## Edges (%d)\n\n", len(g.Edges))
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "- %s -[%s]-> %s\n", e.FromID, e.Type, e.ToID)
	}
	sb.WriteString(knowledge.TokenFooter(knowledge.EstimateTokens(sb.String())))
	return sb.String()
}
