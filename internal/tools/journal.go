package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/prdgraph/internal/journal"
	"github.com/HendryAvila/prdgraph/internal/session"
)

// JournalTool handles the prd_journal MCP tool.
type JournalTool struct {
	session *session.Session
}

// NewJournalTool creates a JournalTool.
func NewJournalTool(s *session.Session) *JournalTool {
	return &JournalTool{session: s}
}

// Definition returns the MCP tool definition for prd_journal.
func (t *JournalTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_journal",
		mcp.WithDescription(
			"List change batches previously applied to this PRD, newest first, with their "+
				"narrative and skip reasons. Pass entry_id to see one batch in full.",
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Number of entries to list (default: %d)", journal.DefaultRecentLimit)),
		),
		mcp.WithNumber("entry_id",
			mcp.Description("Show a single entry, including the batch that was applied"),
		),
	)
}

// Handle processes the prd_journal tool call.
func (t *JournalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := intArg(req, "entry_id", 0); id > 0 {
		e, err := t.session.JournalEntry(int64(id))
		if err != nil {
			return mcp.NewToolResultError(journalError(err)), nil
		}
		return jsonResult(e)
	}

	entries, err := t.session.Journal(intArg(req, "limit", 0))
	if err != nil {
		return mcp.NewToolResultError(journalError(err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No change batches recorded yet."), nil
	}

	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "#%d [%s] applied %d/%d", e.ID, e.CreatedAt, e.Applied, e.Changes)
		if e.Narrative != "" {
			fmt.Fprintf(&sb, ": %s", e.Narrative)
		}
		sb.WriteString("\n")
		for _, msg := range e.Errors {
			fmt.Fprintf(&sb, "  - %s\n", msg)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func journalError(err error) string {
	switch {
	case errors.Is(err, session.ErrNoJournal):
		return "The journal is disabled for this server."
	case errors.Is(err, journal.ErrNotFound):
		return err.Error()
	default:
		return fmt.Sprintf("journal query failed: %v", err)
	}
}
