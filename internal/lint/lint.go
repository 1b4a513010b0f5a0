// Package lint runs deterministic wording checks over requirements before
// they are shown to an assistant or a reviewer.
package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/HendryAvila/prdgraph/internal/knowledge"
	"github.com/HendryAvila/prdgraph/internal/policy"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

// Status is the outcome of a check.
type Status string

const (
	Pass Status = "PASS"
	Fail Status = "FAIL"
)

// MaxSentenceWords is the longest sentence a description may contain.
const MaxSentenceWords = 40

// BannedJargon lists phrases that hide meaning.
var BannedJargon = []string{
	"synergy",
	"paradigm shift",
	"leverage",
	"holistic",
	"disrupt",
	"game changer",
	"low hanging fruit",
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// Result is the verdict for one requirement. Only the first failing rule is
// reported.
type Result struct {
	RequirementID string `json:"requirementId"`
	Status        Status `json:"status"`
	Issue         string `json:"issue,omitempty"`
	Suggestion    string `json:"suggestion,omitempty"`
}

// Requirement checks completeness, jargon and sentence length.
func Requirement(r prd.Requirement) Result {
	return check(r, nil, policy.TermPolicy{})
}

func check(r prd.Requirement, glossary []prd.Term, terms policy.TermPolicy) Result {
	res := Result{RequirementID: r.ID, Status: Pass}

	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Description) == "" {
		return res.fail("Requirement is incomplete.", "Please provide both a title and a description.")
	}

	content := strings.ToLower(r.Title + " " + r.Description)
	for _, word := range BannedJargon {
		if strings.Contains(content, word) {
			return res.fail(
				fmt.Sprintf("Contains banned jargon: %q", word),
				fmt.Sprintf("Replace %q with clearer, plain English.", word),
			)
		}
	}

	for _, sentence := range sentenceSplitter.Split(r.Description, -1) {
		if len(strings.Fields(sentence)) > MaxSentenceWords {
			return res.fail(
				fmt.Sprintf("Sentence is too long (> %d words).", MaxSentenceWords),
				"Break complex sentences into smaller, testable statements.",
			)
		}
	}

	text := r.Title + " " + r.Description
	for _, t := range glossary {
		for _, syn := range bannedSynonyms(t, terms) {
			if knowledge.TermUsed(text, syn) {
				return res.fail(
					fmt.Sprintf("Uses banned synonym %q.", syn),
					fmt.Sprintf("Use the glossary term %q instead.", t.Term),
				)
			}
		}
	}

	return res
}

// bannedSynonyms merges a term's own banned synonyms with those the term
// policy maps to it.
func bannedSynonyms(t prd.Term, terms policy.TermPolicy) []string {
	extra := terms.SynonymsOf(t.Term)
	if len(extra) == 0 {
		return t.BannedSynonyms
	}
	out := make([]string, 0, len(t.BannedSynonyms)+len(extra))
	out = append(out, t.BannedSynonyms...)
	return append(out, extra...)
}

func (r Result) fail(issue, suggestion string) Result {
	r.Status = Fail
	r.Issue = issue
	r.Suggestion = suggestion
	return r
}

// Report is the outcome of linting a whole document.
type Report struct {
	Results []Result `json:"results"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
}

// Document lints every requirement in order. Banned glossary synonyms, and
// synonyms the term policy lists for glossary terms, are checked in addition
// to the per-requirement rules.
func Document(doc *prd.Document, terms policy.TermPolicy) Report {
	rep := Report{Results: []Result{}}
	if doc == nil {
		return rep
	}
	for _, r := range doc.Sections.Requirements {
		res := check(r, doc.Context.Glossary, terms)
		if res.Status == Pass {
			rep.Passed++
		} else {
			rep.Failed++
		}
		rep.Results = append(rep.Results, res)
	}
	return rep
}
