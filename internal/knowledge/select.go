package knowledge

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// MaxFocusNodes bounds a named-section focus.
const MaxFocusNodes = 25

// GeneralQuotas caps each section when no specific focus is given. Nodes are
// grouped by source section, so the goals quota covers goals and metrics.
var GeneralQuotas = []struct {
	Section Section
	Limit   int
}{
	{SectionActors, 5},
	{SectionCompetitors, 3},
	{SectionGlossary, 5},
	{SectionGoals, 5},
	{SectionMilestones, 5},
	{SectionRequirements, 8},
}

// Focus narrows a context pack. Non-empty NodeIDs take precedence over
// Section; an empty Section means general.
type Focus struct {
	Section Section  `json:"section,omitempty"`
	NodeIDs []string `json:"nodeIds,omitempty"`
}

// DefaultFocus is used when the caller gives none.
func DefaultFocus() Focus { return Focus{Section: SectionGeneral} }

// SelectContext returns a bounded subgraph for the focus. TL;DR nodes are
// always kept, and the seed selection is expanded once along every incident
// edge so that no selected node loses its direct neighbours.
func SelectContext(g Graph, focus Focus) Graph {
	known := mapset.NewThreadUnsafeSetWithSize[string](len(g.Nodes))
	for _, n := range g.Nodes {
		known.Add(n.ID)
	}

	seed := mapset.NewThreadUnsafeSet[string]()
	switch {
	case len(focus.NodeIDs) > 0:
		for _, id := range focus.NodeIDs {
			if known.Contains(id) {
				seed.Add(id)
			}
		}
	case focus.Section == "" || focus.Section == SectionGeneral:
		bySection := make(map[Section][]string)
		for _, n := range g.Nodes {
			bySection[n.SourceSection] = append(bySection[n.SourceSection], n.ID)
		}
		for _, q := range GeneralQuotas {
			ids := bySection[q.Section]
			if len(ids) > q.Limit {
				ids = ids[:q.Limit]
			}
			seed.Append(ids...)
		}
	default:
		taken := 0
		for _, n := range g.Nodes {
			if taken == MaxFocusNodes {
				break
			}
			if n.SourceSection == focus.Section {
				seed.Add(n.ID)
				taken++
			}
		}
	}

	for _, n := range g.Nodes {
		if n.Type == NodeTLDR {
			seed.Add(n.ID)
		}
	}

	selected := seed.Clone()
	for _, e := range g.Edges {
		if !seed.Contains(e.FromID) && !seed.Contains(e.ToID) {
			continue
		}
		// Stale references point at ids with no node; they stay out.
		if known.Contains(e.FromID) {
			selected.Add(e.FromID)
		}
		if known.Contains(e.ToID) {
			selected.Add(e.ToID)
		}
	}

	out := Graph{Nodes: []Node{}, Edges: []Edge{}}
	for _, n := range g.Nodes {
		if selected.Contains(n.ID) {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if selected.Contains(e.FromID) && selected.Contains(e.ToID) {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
