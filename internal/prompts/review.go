package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the prd-review MCP prompt.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("prd-review",
		mcp.WithPromptDescription(
			"Review the requirements for completeness, jargon and glossary discipline, "+
				"then propose fixes.",
		),
	)
}

// Handle processes the prd-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "PRD Requirement Review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `prd_lint_requirements` on my PRD.\n\n" +
						"Then:\n" +
						"1. Summarize the failures grouped by issue\n" +
						"2. For each failing requirement, run `prd_get_context` with its node id\n" +
						"3. Propose update changes that fix the issues without changing intent\n" +
						"4. Show me the batch and apply it with `prd_apply_changes` only after I agree",
				),
			},
		},
	}, nil
}
