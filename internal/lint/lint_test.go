package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HendryAvila/prdgraph/internal/policy"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

func TestRequirement(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", MaxSentenceWords+1)) + "."

	tests := []struct {
		name      string
		req       prd.Requirement
		wantIssue string
	}{
		{"pass", prd.Requirement{Title: "Saved carts", Description: "Carts persist for 30 days."}, ""},
		{"missing description", prd.Requirement{Title: "Saved carts", Description: "  "}, "Requirement is incomplete."},
		{"missing title", prd.Requirement{Description: "Something"}, "Requirement is incomplete."},
		{"jargon in title", prd.Requirement{Title: "Holistic checkout", Description: "Pay fast."}, `Contains banned jargon: "holistic"`},
		{"jargon phrase", prd.Requirement{Title: "Quick wins", Description: "Pick the Low Hanging Fruit first."}, `Contains banned jargon: "low hanging fruit"`},
		{"long sentence", prd.Requirement{Title: "Verbose", Description: long}, "Sentence is too long (> 40 words)."},
		{"exactly forty", prd.Requirement{Title: "Edge", Description: strings.Repeat("word ", MaxSentenceWords)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Requirement(tt.req)
			if tt.wantIssue == "" {
				assert.Equal(t, Pass, res.Status)
				assert.Empty(t, res.Issue)
				return
			}
			assert.Equal(t, Fail, res.Status)
			assert.Equal(t, tt.wantIssue, res.Issue)
			assert.NotEmpty(t, res.Suggestion)
		})
	}
}

func TestDocument(t *testing.T) {
	doc := &prd.Document{
		Context: prd.Context{Glossary: []prd.Term{{ID: "t1", Term: "Cart", BannedSynonyms: []string{"basket"}}}},
		Sections: prd.Sections{Requirements: []prd.Requirement{
			{ID: "r1", Title: "Saved carts", Description: "Carts persist."},
			{ID: "r2", Title: "Basket sharing", Description: "Share a basket link."},
			{ID: "r3", Title: "", Description: "No title."},
		}},
	}

	rep := Document(doc, policy.DefaultTermPolicy())

	assert.Equal(t, 1, rep.Passed)
	assert.Equal(t, 2, rep.Failed)
	assert.Equal(t, "r2", rep.Results[1].RequirementID)
	assert.Equal(t, `Uses banned synonym "basket".`, rep.Results[1].Issue)
	assert.Equal(t, `Use the glossary term "Cart" instead.`, rep.Results[1].Suggestion)
	assert.Equal(t, Fail, rep.Results[2].Status)

	assert.Empty(t, Document(nil, policy.TermPolicy{}).Results)
}

func TestDocument_PolicySynonyms(t *testing.T) {
	doc := &prd.Document{
		Context: prd.Context{Glossary: []prd.Term{{ID: "t1", Term: "Cart"}}},
		Sections: prd.Sections{Requirements: []prd.Requirement{
			{ID: "r1", Title: "Trolley sharing", Description: "Share a trolley link."},
			{ID: "r2", Title: "Saved carts", Description: "Carts persist."},
		}},
	}
	terms := policy.DefaultTermPolicy()
	terms.Synonyms["cart"] = []string{"trolley"}

	rep := Document(doc, terms)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, `Uses banned synonym "trolley".`, rep.Results[0].Issue)
	assert.Equal(t, `Use the glossary term "Cart" instead.`, rep.Results[0].Suggestion)
	assert.Equal(t, Pass, rep.Results[1].Status)

	assert.Equal(t, 0, Document(doc, policy.DefaultTermPolicy()).Failed)
}
