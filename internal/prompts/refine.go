// Package prompts implements MCP prompts: user-triggered workflows that
// tell the assistant which tools to call, in which order.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// RefinePrompt handles the prd-refine MCP prompt. It walks the assistant
// through reading a focused context pack and proposing one change batch.
type RefinePrompt struct{}

// NewRefinePrompt creates a RefinePrompt.
func NewRefinePrompt() *RefinePrompt {
	return &RefinePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *RefinePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("prd-refine",
		mcp.WithPromptDescription(
			"Refine part of the PRD: read the focused context, then propose a batch of "+
				"grounded changes and apply it.",
		),
		mcp.WithArgument("section",
			mcp.ArgumentDescription("Section to refine (default: general)"),
		),
		mcp.WithArgument("node_ids",
			mcp.ArgumentDescription("Comma-separated node ids to refine instead of a section"),
		),
		mcp.WithArgument("request",
			mcp.ArgumentDescription("What the user wants changed, in their own words"),
		),
	)
}

// Handle processes the prd-refine prompt request.
func (p *RefinePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments

	focus := "section='general'"
	if ids := args["node_ids"]; ids != "" {
		focus = fmt.Sprintf("node_ids='%s'", ids)
	} else if section := args["section"]; section != "" {
		focus = fmt.Sprintf("section='%s'", section)
	}

	request := args["request"]
	if request == "" {
		request = "Tighten and complete whatever is weakest in this part of the PRD."
	}

	return &mcp.GetPromptResult{
		Description: "Refine PRD: " + focus,
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"%s\n\n"+
						"Please:\n"+
						"1. Run `prd_get_context` with %s and detail_level='standard'\n"+
						"2. Draft ONE change batch that addresses my request. Only reference ids from the context, "+
						"give every new node an id, and respect the actor and term blocklists\n"+
						"3. Cite the source node ids behind each change and write a one-paragraph narrative\n"+
						"4. Run `prd_apply_changes` with the batch\n"+
						"5. Tell me what was applied, and fix or explain every skipped change",
					request, focus,
				)),
			},
		},
	}, nil
}
