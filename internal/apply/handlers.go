package apply

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/knowledge"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

type (
	addHandler    func(a *Applier, ed *prd.Editor, node *contract.NodeDraft) string
	updateHandler func(a *Applier, ed *prd.Editor, id string, patch *contract.Patch) string
	linkHandler   func(a *Applier, ed *prd.Editor, fromID, toID string) string
)

// Handler tables. Every node and edge type must appear either here or in
// the matching unsupported set; a test enforces it.
var (
	addHandlers = map[knowledge.NodeType]addHandler{
		knowledge.NodeActor:       (*Applier).addActor,
		knowledge.NodeTerm:        (*Applier).addTerm,
		knowledge.NodeGoal:        (*Applier).addGoal,
		knowledge.NodeMetric:      (*Applier).addMetric,
		knowledge.NodeRequirement: (*Applier).addRequirement,
		knowledge.NodeMilestone:   (*Applier).addMilestone,
		knowledge.NodeCompetitor:  (*Applier).addCompetitor,
	}

	// Narrative blocks are user-authored prose and TL;DR nodes are synthetic.
	unsupportedAdds = map[knowledge.NodeType]bool{
		knowledge.NodeNarrative: true,
		knowledge.NodeTLDR:      true,
	}

	updateHandlers = map[prd.Kind]updateHandler{
		prd.KindActor:       (*Applier).updateActor,
		prd.KindTerm:        (*Applier).updateTerm,
		prd.KindGoal:        (*Applier).updateGoal,
		prd.KindMetric:      (*Applier).updateMetric,
		prd.KindRequirement: (*Applier).updateRequirement,
		prd.KindMilestone:   (*Applier).updateMilestone,
		prd.KindCompetitor:  (*Applier).updateCompetitor,
		prd.KindNarrative:   (*Applier).updateNarrative,
	}

	linkHandlers = map[knowledge.EdgeType]linkHandler{
		knowledge.EdgeRelatedGoal:         (*Applier).linkRelatedGoal,
		knowledge.EdgePrimaryActor:        (*Applier).linkPrimaryActor,
		knowledge.EdgeSecondaryActor:      (*Applier).linkSecondaryActor,
		knowledge.EdgeIncludesRequirement: (*Applier).linkIncludesRequirement,
		knowledge.EdgeSuccessMetric:       (*Applier).linkSuccessMetric,
	}

	// termUsage edges are derived from text and cannot be asserted.
	unsupportedLinks = map[knowledge.EdgeType]bool{
		knowledge.EdgeTermUsage: true,
	}
)

// nodeTypeOf maps an index kind to the node type used in messages.
var nodeTypeOf = map[prd.Kind]knowledge.NodeType{
	prd.KindActor:       knowledge.NodeActor,
	prd.KindTerm:        knowledge.NodeTerm,
	prd.KindCompetitor:  knowledge.NodeCompetitor,
	prd.KindGoal:        knowledge.NodeGoal,
	prd.KindMetric:      knowledge.NodeMetric,
	prd.KindRequirement: knowledge.NodeRequirement,
	prd.KindMilestone:   knowledge.NodeMilestone,
	prd.KindNarrative:   knowledge.NodeNarrative,
}

func (a *Applier) add(ch contract.Change, ed *prd.Editor) string {
	if ch.Node == nil {
		return "Missing node payload for add operation."
	}
	if ed.Document().Meta.DiscoveryMode == prd.DiscoveryOff {
		return "Discovery mode is off; skipping add operation."
	}
	h, ok := addHandlers[ch.Node.Type]
	if !ok {
		return fmt.Sprintf("Unsupported node type %q for add operation.", ch.Node.Type)
	}
	return h(a, ed, ch.Node)
}

func (a *Applier) update(ch contract.Change, ed *prd.Editor) string {
	if ch.NodeID == "" || ch.Patch == nil {
		return "Missing nodeId or patch for update operation."
	}
	kind, ok := ed.Lookup(ch.NodeID)
	if !ok {
		return fmt.Sprintf("Could not resolve node type for %s.", ch.NodeID)
	}
	if ch.Patch.Type != nil && *ch.Patch.Type != nodeTypeOf[kind] {
		return fmt.Sprintf("Patch type %q does not match %s %s.", *ch.Patch.Type, kind, ch.NodeID)
	}
	h, ok := updateHandlers[kind]
	if !ok {
		return fmt.Sprintf("Unsupported node type %q for update operation.", kind)
	}
	return h(a, ed, ch.NodeID, ch.Patch)
}

func (a *Applier) link(ch contract.Change, ed *prd.Editor) string {
	if ch.EdgeType == "" || ch.FromID == "" || ch.ToID == "" {
		return "Missing edge data for link operation."
	}
	h, ok := linkHandlers[ch.EdgeType]
	if !ok {
		return fmt.Sprintf("Unsupported edge type %q for link operation.", ch.EdgeType)
	}
	return h(a, ed, ch.FromID, ch.ToID)
}

func unsupportedOp(op contract.Op) string {
	return fmt.Sprintf("Unsupported operation %q.", op)
}

// describe turns an editor error into a sentence for the skip list.
func describe(action string, err error) string {
	var reason string
	switch {
	case errors.Is(err, prd.ErrDuplicateID):
		reason = "id already in use"
	case errors.Is(err, prd.ErrNotFound):
		reason = "reference not found"
	case errors.Is(err, prd.ErrWrongKind):
		reason = "reference has the wrong type"
	case errors.Is(err, prd.ErrInvalidEnum):
		reason = "invalid value"
	default:
		reason = "invalid input"
	}
	detail := err.Error()
	if i := strings.Index(detail, ": "); i >= 0 {
		detail = detail[i+2:]
	}
	return fmt.Sprintf("Could not %s: %s (%s).", action, reason, detail)
}

func invalidData(what string, err error) string {
	return fmt.Sprintf("Invalid data for %s: %v.", what, err)
}
