package graph

import (
	"slices"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"
)

const (
	// UnknownType is the display type of nodes without labels.
	UnknownType = "Unknown"

	CategoryColor = "#00ff00"
	CategoryShape = "diamond"

	categoryIDPrefix = "category:"
)

// VisualNodeKind distinguishes stored entities from synthetic category nodes.
type VisualNodeKind string

const (
	VisualNodeEntity   VisualNodeKind = "entity"
	VisualNodeCategory VisualNodeKind = "category"
)

// RenderOptions configures the canvas of a rendered graph.
type RenderOptions struct {
	Height    string `json:"height"`
	Width     string `json:"width"`
	BgColor   string `json:"bg_color"`
	FontColor string `json:"font_color"`
}

// DefaultRenderOptions returns a 750px high, full width canvas on a dark
// background with white labels.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Height:    "750px",
		Width:     "100%",
		BgColor:   "#222222",
		FontColor: "white",
	}
}

// VisualNode is a node of a rendered graph. Field names follow the
// vis-network node options.
type VisualNode struct {
	ID    string         `json:"id"`
	Label string         `json:"label,omitempty"`
	Title string         `json:"title,omitempty"`
	Color string         `json:"color,omitempty"`
	Shape string         `json:"shape,omitempty"`
	Kind  VisualNodeKind `json:"kind"`
}

// VisualEdge is an edge of a rendered graph. Field names follow the
// vis-network edge options.
type VisualEdge struct {
	ID      string `json:"id,omitempty"`
	From    string `json:"from"`
	To      string `json:"to"`
	Label   string `json:"label,omitempty"`
	Title   string `json:"title,omitempty"`
	Physics bool   `json:"physics"`
}

// VisualGraph is a renderable graph: stored entities, their relationships
// and one category node per display type linked to its members.
type VisualGraph struct {
	Nodes   []VisualNode  `json:"nodes"`
	Edges   []VisualEdge  `json:"edges"`
	Options RenderOptions `json:"options"`
}

// Render builds a VisualGraph from subgraph triples. It returns false when
// there are no triples, meaning there is nothing to display.
//
// Entity nodes are keyed by their stored element id and the first
// occurrence wins. Each node's display type is its first label, or
// UnknownType. One category node per display type is added and connected
// to its members by edges with physics disabled.
func Render(triples []common.Triple, opts RenderOptions) (*VisualGraph, bool) {
	if len(triples) == 0 {
		return nil, false
	}

	vg := &VisualGraph{
		Nodes:   []VisualNode{},
		Edges:   []VisualEdge{},
		Options: opts,
	}

	nodeTypes := make(map[string]string)
	var order []string
	addNode := func(n common.StoredNode) {
		if _, ok := nodeTypes[n.ElementID]; ok {
			return
		}
		typ := displayType(n)
		nodeTypes[n.ElementID] = typ
		order = append(order, n.ElementID)
		vg.Nodes = append(vg.Nodes, VisualNode{
			ID:    n.ElementID,
			Label: n.Name(),
			Title: "Type: " + typ,
			Kind:  VisualNodeEntity,
		})
	}

	seenEdges := make(map[string]struct{})
	for _, t := range triples {
		addNode(t.Source)
		addNode(t.Target)

		if _, ok := seenEdges[t.Relationship.ElementID]; ok {
			continue
		}
		seenEdges[t.Relationship.ElementID] = struct{}{}
		vg.Edges = append(vg.Edges, VisualEdge{
			ID:      t.Relationship.ElementID,
			From:    t.Source.ElementID,
			To:      t.Target.ElementID,
			Label:   t.Relationship.Type,
			Title:   t.Relationship.Type,
			Physics: true,
		})
	}

	categories := make([]string, 0)
	for _, typ := range nodeTypes {
		if !slices.Contains(categories, typ) {
			categories = append(categories, typ)
		}
	}
	slices.Sort(categories)

	for _, category := range categories {
		categoryID := categoryIDPrefix + category
		vg.Nodes = append(vg.Nodes, VisualNode{
			ID:    categoryID,
			Label: category,
			Color: CategoryColor,
			Shape: CategoryShape,
			Kind:  VisualNodeCategory,
		})
		for _, id := range order {
			if nodeTypes[id] != category {
				continue
			}
			vg.Edges = append(vg.Edges, VisualEdge{
				From:    categoryID,
				To:      id,
				Physics: false,
			})
		}
	}

	return vg, true
}

func displayType(n common.StoredNode) string {
	if len(n.Labels) == 0 || n.Labels[0] == "" {
		return UnknownType
	}
	return n.Labels[0]
}

// NodesOfKind returns the nodes of the given kind in insertion order.
func (v *VisualGraph) NodesOfKind(kind VisualNodeKind) []VisualNode {
	var out []VisualNode
	for _, n := range v.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
