// Package resources implements MCP resource handlers: read-only views of
// the live PRD addressed by prd:// URIs.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/session"
)

// Resource URIs.
const (
	DocumentURI = "prd://document"
	PoliciesURI = "prd://policies"
	SchemaURI   = "prd://contract/schema"
)

const mimeJSON = "application/json"

// Handler serves the PRD resources.
type Handler struct {
	session *session.Session
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(s *session.Session) *Handler {
	return &Handler{session: s}
}

// DocumentResource returns the definition of the document snapshot.
func (h *Handler) DocumentResource() mcp.Resource {
	return mcp.NewResource(
		DocumentURI,
		"PRD Document",
		mcp.WithResourceDescription("Current PRD document as JSON"),
		mcp.WithMIMEType(mimeJSON),
	)
}

// PoliciesResource returns the definition of the policy tables.
func (h *Handler) PoliciesResource() mcp.Resource {
	return mcp.NewResource(
		PoliciesURI,
		"PRD Policies",
		mcp.WithResourceDescription("Actor and glossary allow/block lists applied to proposals"),
		mcp.WithMIMEType(mimeJSON),
	)
}

// SchemaResource returns the definition of the change batch schema.
func (h *Handler) SchemaResource() mcp.Resource {
	return mcp.NewResource(
		SchemaURI,
		"PRD Change Batch Schema",
		mcp.WithResourceDescription("JSON Schema accepted by prd_apply_changes"),
		mcp.WithMIMEType(mimeJSON),
	)
}

// HandleDocument returns the document snapshot.
func (h *Handler) HandleDocument(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(req.Params.URI, h.session.Snapshot())
}

// HandlePolicies returns the policy tables.
func (h *Handler) HandlePolicies(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(req.Params.URI, h.session.Policies())
}

// HandleSchema returns the change batch JSON Schema.
func (h *Handler) HandleSchema(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := contract.SchemaJSON()
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return textContents(req.Params.URI, string(data)), nil
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return textContents(uri, string(data)), nil
}

func textContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     text,
		},
	}
}
