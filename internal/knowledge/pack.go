package knowledge

import (
	"github.com/HendryAvila/prdgraph/internal/policy"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

// PackMeta is the slice of document metadata the assistant sees.
type PackMeta struct {
	Title         string            `json:"title"`
	Status        prd.DocStatus     `json:"status"`
	Version       int               `json:"version"`
	DiscoveryMode prd.DiscoveryMode `json:"discoveryMode"`
}

// ContextPack is the complete payload handed to the assistant.
type ContextPack struct {
	Meta     PackMeta   `json:"meta"`
	Focus    Focus      `json:"focus"`
	Policies policy.Set `json:"policies"`
	Nodes    []Node     `json:"nodes"`
	Edges    []Edge     `json:"edges"`
}

// BuildContextPack builds the graph, selects the focused subgraph and wraps
// it with metadata and policies. A nil focus means general.
func BuildContextPack(doc *prd.Document, focus *Focus, policies policy.Set) ContextPack {
	f := DefaultFocus()
	if focus != nil && (len(focus.NodeIDs) > 0 || focus.Section != "") {
		f = *focus
	}
	sub := SelectContext(BuildGraph(doc), f)

	pack := ContextPack{
		Focus:    f,
		Policies: policies,
		Nodes:    sub.Nodes,
		Edges:    sub.Edges,
	}
	if doc != nil {
		pack.Meta = PackMeta{
			Title:         doc.Meta.Title,
			Status:        doc.Meta.Status,
			Version:       doc.Meta.Version,
			DiscoveryMode: doc.Meta.DiscoveryMode,
		}
	}
	return pack
}
