// Package server wires the PRD session into an MCP server instance.
//
// This is the composition root: it loads the document, opens the journal,
// builds the session and registers tools, prompts and resources. No
// business logic lives here.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/HendryAvila/prdgraph/internal/config"
	"github.com/HendryAvila/prdgraph/internal/journal"
	"github.com/HendryAvila/prdgraph/internal/prd"
	"github.com/HendryAvila/prdgraph/internal/prompts"
	"github.com/HendryAvila/prdgraph/internal/resources"
	"github.com/HendryAvila/prdgraph/internal/session"
	"github.com/HendryAvila/prdgraph/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server for cfg.
//
// The returned cleanup function closes the journal and must be called on
// shutdown. It is always non-nil and safe to call even if the journal was
// never opened.
func New(cfg config.Config, log *logrus.Logger) (*server.MCPServer, *session.Session, func(), error) {
	sess, cleanup, err := NewSession(cfg, log)
	if err != nil {
		return nil, nil, noop, err
	}

	s := server.NewMCPServer(
		"prdgraph",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	Register(s, sess)
	return s, sess, cleanup, nil
}

// NewSession loads the configured document and opens the journal.
// Journal failures disable the journal with a warning; the session still
// works without it.
func NewSession(cfg config.Config, log *logrus.Logger) (*session.Session, func(), error) {
	doc, err := loadDocument(cfg.Document)
	if err != nil {
		return nil, noop, err
	}

	opts := []session.Option{
		session.WithLogger(log.WithField("component", "session")),
		session.WithPolicies(cfg.Policies),
	}

	cleanup := noop
	if cfg.Journal {
		store, err := journal.New(cfg.DataDir)
		if err != nil {
			log.WithError(err).Warn("journal disabled")
		} else {
			opts = append(opts, session.WithJournal(store))
			cleanup = func() {
				if err := store.Close(); err != nil {
					log.WithError(err).Warn("journal close failed")
				}
			}
		}
	}

	sess, err := session.New(doc, opts...)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	log.WithFields(logrus.Fields{
		"document": sess.DocumentID(),
		"journal":  cfg.Journal,
	}).Info("session ready")
	return sess, cleanup, nil
}

// Register adds every tool, prompt and resource backed by sess.
func Register(s *server.MCPServer, sess *session.Session) {
	// --- Tools ---

	contextTool := tools.NewContextTool(sess)
	s.AddTool(contextTool.Definition(), contextTool.Handle)

	graphTool := tools.NewGraphTool(sess)
	s.AddTool(graphTool.Definition(), graphTool.Handle)

	applyTool := tools.NewApplyTool(sess)
	s.AddTool(applyTool.Definition(), applyTool.Handle)

	documentTool := tools.NewDocumentTool(sess)
	s.AddTool(documentTool.Definition(), documentTool.Handle)

	discoveryTool := tools.NewDiscoveryTool(sess)
	s.AddTool(discoveryTool.Definition(), discoveryTool.Handle)

	focusTool := tools.NewFocusLabelTool(sess)
	s.AddTool(focusTool.Definition(), focusTool.Handle)

	lintTool := tools.NewLintTool(sess)
	s.AddTool(lintTool.Definition(), lintTool.Handle)

	journalTool := tools.NewJournalTool(sess)
	s.AddTool(journalTool.Definition(), journalTool.Handle)

	// --- Prompts ---

	refinePrompt := prompts.NewRefinePrompt()
	s.AddPrompt(refinePrompt.Definition(), refinePrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Resources ---

	h := resources.NewHandler(sess)
	s.AddResource(h.DocumentResource(), h.HandleDocument)
	s.AddResource(h.PoliciesResource(), h.HandlePolicies)
	s.AddResource(h.SchemaResource(), h.HandleSchema)
}

func loadDocument(path string) (*prd.Document, error) {
	if path == "" {
		return prd.NewDocument(""), nil
	}
	doc, err := prd.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return doc, nil
}

// noop is the cleanup used when no journal was opened.
func noop() {}

// serverInstructions tells the assistant how to work with the PRD.
func serverInstructions() string {
	return `You have access to prdgraph, an MCP server holding one Product Requirements Document (PRD)
as a knowledge graph.

## How to work

1. READ before you write. Call prd_get_context with a section or node ids. Everything you
   propose must be grounded in the nodes it returns.
2. PROPOSE one batch. Call prd_apply_changes with {changes, newNodes?, citations?, narrative?}.
   The JSON Schema is in the tool description and in the prd://contract/schema resource.
3. REPORT the result. Each change is applied or skipped on its own; explain every skipped
   change to the user in plain words.

## Rules

- Only reference ids that exist in the context, or that an earlier add in the same batch created.
- Give every new node an explicit id if any later change links to it.
- Never add actors or glossary terms on the policy blocklists; prefer allowlisted names.
- While discovery mode is "off", propose only updates and links. Do not change the mode
  unless the user asks.
- Metrics belong to exactly one goal. A successMetric link moves a metric to the linked goal.

## Other tools

- prd_lint_requirements: deterministic checks for incomplete requirements, jargon and long sentences.
- prd_focus_label: short label for what the conversation is focused on.
- prd_journal: what previous batches changed and why changes were skipped.
- prd_get_document / prd_get_graph: the full document or graph when a focused pack is not enough.`
}
