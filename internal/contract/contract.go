// Package contract defines the change batch an assistant returns and the
// structural gate every batch must pass before anything is applied.
package contract

import (
	"github.com/HendryAvila/prdgraph/internal/knowledge"
)

// Op is the kind of a proposed change.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpLink   Op = "link"
)

// Ops lists every operation in a stable order.
func Ops() []Op { return []Op{OpAdd, OpUpdate, OpLink} }

// NodeDraft is a proposed entity. Data carries the type-specific fields
// (roles, priorities, references) the node projection does not.
type NodeDraft struct {
	ID            string             `json:"id,omitempty" jsonschema:"description=Entity id. Later changes in the same batch may reference it. Generated when empty."`
	Type          knowledge.NodeType `json:"type" jsonschema:"enum=actor,enum=competitor,enum=goal,enum=metric,enum=milestone,enum=narrative,enum=requirement,enum=term,enum=tldr"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	SourceSection string             `json:"sourceSection,omitempty"`
	Data          map[string]any     `json:"data,omitempty"`
	Tags          []string           `json:"tags,omitempty"`
}

// Patch is a partial NodeDraft. Nil fields are left unchanged.
type Patch struct {
	Type          *knowledge.NodeType `json:"type,omitempty" jsonschema:"enum=actor,enum=competitor,enum=goal,enum=metric,enum=milestone,enum=narrative,enum=requirement,enum=term,enum=tldr"`
	Title         *string             `json:"title,omitempty"`
	Description   *string             `json:"description,omitempty"`
	SourceSection *string             `json:"sourceSection,omitempty"`
	Data          map[string]any      `json:"data,omitempty"`
	Tags          []string            `json:"tags,omitempty"`
}

// Change is one proposed operation. Which fields matter depends on Op:
// add uses Node, update uses NodeID and Patch, link uses EdgeType, FromID
// and ToID.
type Change struct {
	ID       string             `json:"id,omitempty"`
	Op       Op                 `json:"op" jsonschema:"enum=add,enum=update,enum=link"`
	Node     *NodeDraft         `json:"node,omitempty"`
	NodeID   string             `json:"nodeId,omitempty"`
	Patch    *Patch             `json:"patch,omitempty"`
	EdgeType knowledge.EdgeType `json:"edgeType,omitempty" jsonschema:"enum=includesRequirement,enum=primaryActor,enum=relatedGoal,enum=secondaryActor,enum=successMetric,enum=termUsage"`
	FromID   string             `json:"fromId,omitempty"`
	ToID     string             `json:"toId,omitempty"`
}

// Citation links a change to the context nodes that justified it. Citations
// are carried for display and never checked against the document.
type Citation struct {
	ChangeID      string   `json:"changeId"`
	SourceNodeIDs []string `json:"sourceNodeIds"`
	Note          string   `json:"note,omitempty"`
}

// Batch is a complete proposal.
type Batch struct {
	Changes   []Change    `json:"changes"`
	NewNodes  []NodeDraft `json:"newNodes,omitempty"`
	Citations []Citation  `json:"citations,omitempty"`
	Narrative string      `json:"narrative,omitempty"`
}
