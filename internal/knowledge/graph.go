// Package knowledge derives a typed node/edge graph from a PRD document and
// selects bounded, edge-closed subgraphs of it for grounding an assistant.
//
// Everything here is a pure read-side projection: graphs are rebuilt from
// the document on every call and never cached.
package knowledge

import (
	"fmt"

	"github.com/HendryAvila/prdgraph/internal/prd"
)

// NodeType tags a graph node.
type NodeType string

const (
	NodeActor       NodeType = "actor"
	NodeCompetitor  NodeType = "competitor"
	NodeGoal        NodeType = "goal"
	NodeMetric      NodeType = "metric"
	NodeMilestone   NodeType = "milestone"
	NodeNarrative   NodeType = "narrative"
	NodeRequirement NodeType = "requirement"
	NodeTerm        NodeType = "term"
	NodeTLDR        NodeType = "tldr"
)

// NodeTypes lists every node type in a stable order.
func NodeTypes() []NodeType {
	return []NodeType{
		NodeActor, NodeCompetitor, NodeGoal, NodeMetric, NodeMilestone,
		NodeNarrative, NodeRequirement, NodeTerm, NodeTLDR,
	}
}

// ValidNodeType reports whether t is a known node type.
func ValidNodeType(t NodeType) bool {
	for _, v := range NodeTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// EdgeType tags a directed relationship.
type EdgeType string

const (
	EdgeIncludesRequirement EdgeType = "includesRequirement"
	EdgePrimaryActor        EdgeType = "primaryActor"
	EdgeRelatedGoal         EdgeType = "relatedGoal"
	EdgeSecondaryActor      EdgeType = "secondaryActor"
	EdgeSuccessMetric       EdgeType = "successMetric"
	EdgeTermUsage           EdgeType = "termUsage"
)

// EdgeTypes lists every edge type in a stable order.
func EdgeTypes() []EdgeType {
	return []EdgeType{
		EdgeIncludesRequirement, EdgePrimaryActor, EdgeRelatedGoal,
		EdgeSecondaryActor, EdgeSuccessMetric, EdgeTermUsage,
	}
}

// ValidEdgeType reports whether t is a known edge type.
func ValidEdgeType(t EdgeType) bool {
	for _, v := range EdgeTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// Section names the document section a node originates from.
type Section string

const (
	SectionActors       Section = "actors"
	SectionBackground   Section = "background"
	SectionCompetitors  Section = "competitors"
	SectionGeneral      Section = "general"
	SectionGlossary     Section = "glossary"
	SectionGoals        Section = "goals"
	SectionMilestones   Section = "milestones"
	SectionRequirements Section = "requirements"
	SectionTLDR         Section = "tldr"
)

// Sections lists every focus section.
func Sections() []Section {
	return []Section{
		SectionActors, SectionBackground, SectionCompetitors, SectionGeneral, SectionGlossary,
		SectionGoals, SectionMilestones, SectionRequirements, SectionTLDR,
	}
}

// ParseSection validates a focus section name. Empty means general.
func ParseSection(s string) (Section, error) {
	if s == "" {
		return SectionGeneral, nil
	}
	for _, v := range Sections() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Node is a typed projection of one document entity.
type Node struct {
	ID            string   `json:"id"`
	Type          NodeType `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	SourceSection Section  `json:"sourceSection"`
	Tags          []string `json:"tags,omitempty"`
}

// Edge is a typed directed relationship between two node ids.
type Edge struct {
	FromID string   `json:"fromId"`
	ToID   string   `json:"toId"`
	Type   EdgeType `json:"type"`
}

// Graph is the full derived view of a document.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesOfType returns the edges of one type, in graph order.
func (g Graph) EdgesOfType(t EdgeType) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// BuildGraph derives nodes and edges from the document. It cannot fail:
// empty sections simply contribute nothing.
func BuildGraph(doc *prd.Document) Graph {
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}
	if doc == nil {
		return g
	}

	addActors(doc, &g)
	addCompetitors(doc, &g)
	addTerms(doc, &g)
	addGoals(doc, &g)
	addRequirements(doc, &g)
	addMilestones(doc, &g)
	addBackground(doc, &g)
	addTLDR(doc, &g)
	addTermUsage(doc, &g)

	return g
}

func addActors(doc *prd.Document, g *Graph) {
	for _, a := range doc.Context.Actors {
		g.Nodes = append(g.Nodes, Node{
			ID:            a.ID,
			Type:          NodeActor,
			Title:         a.Name,
			Description:   a.Description,
			SourceSection: SectionActors,
			Tags:          []string{string(a.Role), string(a.Priority)},
		})
	}
}

func addCompetitors(doc *prd.Document, g *Graph) {
	for _, c := range doc.Context.Competitors {
		var tags []string
		if c.Selected {
			tags = []string{"selected"}
		}
		g.Nodes = append(g.Nodes, Node{
			ID:            c.ID,
			Type:          NodeCompetitor,
			Title:         c.Name,
			Description:   c.Analysis,
			SourceSection: SectionCompetitors,
			Tags:          tags,
		})
	}
}

func addTerms(doc *prd.Document, g *Graph) {
	for _, t := range doc.Context.Glossary {
		g.Nodes = append(g.Nodes, Node{
			ID:            t.ID,
			Type:          NodeTerm,
			Title:         t.Term,
			Description:   t.Definition,
			SourceSection: SectionGlossary,
		})
	}
}

func addGoals(doc *prd.Document, g *Graph) {
	for _, goal := range doc.Sections.Goals {
		g.Nodes = append(g.Nodes, Node{
			ID:            goal.ID,
			Type:          NodeGoal,
			Title:         goal.Title,
			Description:   goal.Description,
			SourceSection: SectionGoals,
			Tags:          []string{string(goal.Priority)},
		})
		for _, m := range goal.Metrics {
			g.Nodes = append(g.Nodes, Node{
				ID:            m.ID,
				Type:          NodeMetric,
				Title:         m.Description,
				Description:   metricDescription(m),
				SourceSection: SectionGoals,
				Tags:          []string{string(m.Type)},
			})
			g.Edges = append(g.Edges, Edge{FromID: goal.ID, ToID: m.ID, Type: EdgeSuccessMetric})
		}
	}
}

func metricDescription(m prd.Metric) string {
	if m.Baseline != "" {
		return fmt.Sprintf("target %s (baseline %s)", m.Target, m.Baseline)
	}
	if m.Target != "" {
		return "target " + m.Target
	}
	return ""
}

func addRequirements(doc *prd.Document, g *Graph) {
	for _, r := range doc.Sections.Requirements {
		g.Nodes = append(g.Nodes, Node{
			ID:            r.ID,
			Type:          NodeRequirement,
			Title:         r.Title,
			Description:   r.Description,
			SourceSection: SectionRequirements,
			Tags:          []string{string(r.Priority), string(r.Type), string(r.Status)},
		})
		if r.PrimaryActorID != "" {
			g.Edges = append(g.Edges, Edge{FromID: r.ID, ToID: r.PrimaryActorID, Type: EdgePrimaryActor})
		}
		for _, id := range r.SecondaryActorIDs {
			g.Edges = append(g.Edges, Edge{FromID: r.ID, ToID: id, Type: EdgeSecondaryActor})
		}
		for _, id := range r.RelatedGoalIDs {
			g.Edges = append(g.Edges, Edge{FromID: r.ID, ToID: id, Type: EdgeRelatedGoal})
		}
	}
}

func addMilestones(doc *prd.Document, g *Graph) {
	for _, m := range doc.Sections.Milestones {
		var tags []string
		if m.TargetDate != "" {
			tags = []string{m.TargetDate}
		}
		g.Nodes = append(g.Nodes, Node{
			ID:            m.ID,
			Type:          NodeMilestone,
			Title:         m.Title,
			Description:   joinLines(m.ExitCriteria),
			SourceSection: SectionMilestones,
			Tags:          tags,
		})
		for _, id := range m.IncludedRequirementIDs {
			g.Edges = append(g.Edges, Edge{FromID: m.ID, ToID: id, Type: EdgeIncludesRequirement})
		}
	}
}

func addBackground(doc *prd.Document, g *Graph) {
	for _, b := range doc.Sections.Background.Blocks {
		g.Nodes = append(g.Nodes, Node{
			ID:            b.ID,
			Type:          NodeNarrative,
			Title:         b.Title,
			Description:   b.Content,
			SourceSection: SectionBackground,
			Tags:          []string{string(b.Type)},
		})
	}
}

func addTLDR(doc *prd.Document, g *Graph) {
	g.Nodes = append(g.Nodes,
		Node{
			ID:            doc.ProblemNodeID(),
			Type:          NodeTLDR,
			Title:         "Problem",
			Description:   doc.Sections.TLDR.Problem,
			SourceSection: SectionTLDR,
		},
		Node{
			ID:            doc.SolutionNodeID(),
			Type:          NodeTLDR,
			Title:         "Solution",
			Description:   doc.Sections.TLDR.Solution,
			SourceSection: SectionTLDR,
		},
	)
}

func addTermUsage(doc *prd.Document, g *Graph) {
	for _, t := range doc.Context.Glossary {
		m := newTermMatcher(t.Term)
		if m == nil {
			continue
		}
		for _, r := range doc.Sections.Requirements {
			if m.matches(r.Title) || m.matches(r.Description) {
				g.Edges = append(g.Edges, Edge{FromID: t.ID, ToID: r.ID, Type: EdgeTermUsage})
			}
		}
		for _, goal := range doc.Sections.Goals {
			if m.matches(goal.Title) || m.matches(goal.Description) {
				g.Edges = append(g.Edges, Edge{FromID: t.ID, ToID: goal.ID, Type: EdgeTermUsage})
			}
		}
	}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
