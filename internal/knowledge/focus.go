package knowledge

import (
	"fmt"

	"github.com/HendryAvila/prdgraph/internal/prd"
)

// FocusKindMixed is reported when focused ids span several kinds.
const FocusKindMixed = "mixed"

// FocusLabel summarizes a node-id focus for display, e.g.
// "Requirement: Checkout +2".
type FocusLabel struct {
	Count int    `json:"count"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// FocusMeta resolves ids against actors, terms, competitors, goals,
// requirements and milestones (in that order) and builds a label. It returns
// nil when no id resolves.
func FocusMeta(doc *prd.Document, nodeIDs []string) *FocusLabel {
	if doc == nil || len(nodeIDs) == 0 {
		return nil
	}

	var (
		count      int
		firstKind  string
		firstLabel string
		mixed      bool
	)
	for _, id := range nodeIDs {
		kind, label, ok := resolveLabel(doc, id)
		if !ok {
			continue
		}
		if count == 0 {
			firstKind, firstLabel = kind, label
		} else if kind != firstKind {
			mixed = true
		}
		count++
	}
	if count == 0 {
		return nil
	}

	out := &FocusLabel{Count: count, Kind: firstKind, Label: firstLabel}
	if mixed {
		out.Kind = FocusKindMixed
	}
	if count > 1 {
		out.Label = fmt.Sprintf("%s +%d", firstLabel, count-1)
	}
	return out
}

func resolveLabel(doc *prd.Document, id string) (kind, label string, ok bool) {
	for _, a := range doc.Context.Actors {
		if a.ID == id {
			return "actor", "Actor: " + a.Name, true
		}
	}
	for _, t := range doc.Context.Glossary {
		if t.ID == id {
			return "term", "Term: " + t.Term, true
		}
	}
	for _, c := range doc.Context.Competitors {
		if c.ID == id {
			return "competitor", "Competitor: " + c.Name, true
		}
	}
	for _, g := range doc.Sections.Goals {
		if g.ID == id {
			return "goal", "Goal: " + g.Title, true
		}
	}
	for _, r := range doc.Sections.Requirements {
		if r.ID == id {
			return "requirement", "Requirement: " + r.Title, true
		}
	}
	for _, m := range doc.Sections.Milestones {
		if m.ID == id {
			return "milestone", "Milestone: " + m.Title, true
		}
	}
	return "", "", false
}
