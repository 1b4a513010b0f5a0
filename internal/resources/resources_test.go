package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/prdgraph/internal/policy"
	"github.com/HendryAvila/prdgraph/internal/prd"
	"github.com/HendryAvila/prdgraph/internal/session"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	s, err := session.New(prd.NewDocument("Checkout"))
	require.NoError(t, err)
	return NewHandler(s)
}

func read(t *testing.T, fn func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error), uri string) mcp.TextResourceContents {
	t.Helper()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	contents, err := fn(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, uri, tc.URI)
	assert.Equal(t, "application/json", tc.MIMEType)
	return tc
}

func TestDefinitions(t *testing.T) {
	h := newHandler(t)
	assert.Equal(t, DocumentURI, h.DocumentResource().URI)
	assert.Equal(t, PoliciesURI, h.PoliciesResource().URI)
	assert.Equal(t, SchemaURI, h.SchemaResource().URI)
}

func TestHandleDocument(t *testing.T) {
	h := newHandler(t)
	tc := read(t, h.HandleDocument, DocumentURI)

	var doc prd.Document
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &doc))
	assert.Equal(t, "Checkout", doc.Meta.Title)
}

func TestHandlePolicies(t *testing.T) {
	h := newHandler(t)
	tc := read(t, h.HandlePolicies, PoliciesURI)

	var set policy.Set
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &set))
	assert.Equal(t, policy.Default().ActorPolicy.Blocklist, set.ActorPolicy.Blocklist)
}

func TestHandleSchema(t *testing.T) {
	h := newHandler(t)
	tc := read(t, h.HandleSchema, SchemaURI)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &schema))
	assert.Equal(t, "PRD change batch", schema["title"])
}
