package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/prdgraph/internal/lint"
	"github.com/HendryAvila/prdgraph/internal/session"
)

// LintTool handles the prd_lint_requirements MCP tool.
type LintTool struct {
	session *session.Session
}

// NewLintTool creates a LintTool.
func NewLintTool(s *session.Session) *LintTool {
	return &LintTool{session: s}
}

// Definition returns the MCP tool definition for prd_lint_requirements.
func (t *LintTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_lint_requirements",
		mcp.WithDescription(
			"Check every requirement for completeness, banned jargon, overlong sentences and "+
				"banned glossary synonyms. Use the suggestions to propose updates.",
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default) or 'json'"),
			mcp.Enum(formatMarkdown, formatJSON),
		),
	)
}

// Handle processes the prd_lint_requirements tool call.
func (t *LintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep := t.session.Lint()
	if req.GetString("format", formatMarkdown) == formatJSON {
		return jsonResult(rep)
	}

	if len(rep.Results) == 0 {
		return mcp.NewToolResultText("No requirements to lint."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d passed, %d failed.\n", rep.Passed, rep.Failed)
	for _, r := range rep.Results {
		if r.Status == lint.Pass {
			continue
		}
		fmt.Fprintf(&sb, "\n- `%s` %s\n  Suggestion: %s\n", r.RequirementID, r.Issue, r.Suggestion)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
