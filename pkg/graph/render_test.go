package graph

import (
	"testing"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedNode(id, name string, labels ...string) common.StoredNode {
	return common.StoredNode{
		ElementID:  id,
		Labels:     labels,
		Properties: map[string]any{"id": name, "name": name},
	}
}

func triple(src common.StoredNode, relID, relType string, tgt common.StoredNode) common.Triple {
	return common.Triple{
		Source: src,
		Relationship: common.StoredRelationship{
			ElementID:      relID,
			Type:           relType,
			StartElementID: src.ElementID,
			EndElementID:   tgt.ElementID,
		},
		Target: tgt,
	}
}

func countPhysics(edges []VisualEdge, physics bool) int {
	n := 0
	for _, e := range edges {
		if e.Physics == physics {
			n++
		}
	}
	return n
}

func TestRender_Empty(t *testing.T) {
	vg, ok := Render(nil, DefaultRenderOptions())
	assert.False(t, ok)
	assert.Nil(t, vg)

	vg, ok = Render([]common.Triple{}, DefaultRenderOptions())
	assert.False(t, ok)
	assert.Nil(t, vg)
}

func TestRender_SingleTriple(t *testing.T) {
	john := storedNode("n1", "John", "Person")
	acme := storedNode("n2", "Acme", "Company")

	vg, ok := Render([]common.Triple{triple(john, "r1", "WORKS_AT", acme)}, DefaultRenderOptions())
	require.True(t, ok)

	entities := vg.NodesOfKind(VisualNodeEntity)
	categories := vg.NodesOfKind(VisualNodeCategory)
	require.Len(t, entities, 2)
	require.Len(t, categories, 2)
	require.Len(t, vg.Edges, 3)

	assert.Equal(t, VisualNode{ID: "n1", Label: "John", Title: "Type: Person", Kind: VisualNodeEntity}, entities[0])
	assert.Equal(t, VisualNode{ID: "n2", Label: "Acme", Title: "Type: Company", Kind: VisualNodeEntity}, entities[1])

	assert.Equal(t, "Company", categories[0].Label)
	assert.Equal(t, "Person", categories[1].Label)
	for _, c := range categories {
		assert.Equal(t, CategoryColor, c.Color)
		assert.Equal(t, CategoryShape, c.Shape)
	}

	assert.Equal(t, 1, countPhysics(vg.Edges, true))
	assert.Equal(t, 2, countPhysics(vg.Edges, false))
	assert.Equal(t, VisualEdge{ID: "r1", From: "n1", To: "n2", Label: "WORKS_AT", Title: "WORKS_AT", Physics: true}, vg.Edges[0])
	assert.Contains(t, vg.Edges, VisualEdge{From: "category:Person", To: "n1"})
	assert.Contains(t, vg.Edges, VisualEdge{From: "category:Company", To: "n2"})

	assert.Equal(t, DefaultRenderOptions(), vg.Options)
}

func TestRender_DeduplicatesNodesAndEdges(t *testing.T) {
	jane := storedNode("n1", "Jane Smith", "Person")
	degree := storedNode("n2", "Master's Degree", "Degree")
	mit := storedNode("n3", "MIT", "University")
	rel := triple(jane, "r1", "HAS_DEGREE", degree)

	vg, ok := Render([]common.Triple{
		rel,
		rel,
		triple(degree, "r2", "AWARDED_BY", mit),
	}, DefaultRenderOptions())
	require.True(t, ok)

	assert.Len(t, vg.NodesOfKind(VisualNodeEntity), 3)
	assert.Len(t, vg.NodesOfKind(VisualNodeCategory), 3)
	assert.Equal(t, 2, countPhysics(vg.Edges, true))
	assert.Equal(t, 3, countPhysics(vg.Edges, false))
}

func TestRender_FirstOccurrenceWins(t *testing.T) {
	a := storedNode("n1", "Acme", "Company")
	renamed := storedNode("n1", "Acme Corp", "Organization")
	b := storedNode("n2", "Bob", "Person")

	vg, ok := Render([]common.Triple{
		triple(b, "r1", "WORKS_AT", a),
		triple(b, "r2", "KNOWS", renamed),
	}, DefaultRenderOptions())
	require.True(t, ok)

	entities := vg.NodesOfKind(VisualNodeEntity)
	require.Len(t, entities, 2)
	assert.Equal(t, "Acme", entities[1].Label)
	assert.Equal(t, "Type: Company", entities[1].Title)
	assert.Len(t, vg.NodesOfKind(VisualNodeCategory), 2)
}

func TestRender_UnknownType(t *testing.T) {
	src := storedNode("n1", "Python")
	tgt := storedNode("n2", "Go", "")

	vg, ok := Render([]common.Triple{triple(src, "r1", "RELATED_TO", tgt)}, DefaultRenderOptions())
	require.True(t, ok)

	categories := vg.NodesOfKind(VisualNodeCategory)
	require.Len(t, categories, 1)
	assert.Equal(t, UnknownType, categories[0].Label)
	assert.Equal(t, "Type: Unknown", vg.Nodes[0].Title)
	assert.Equal(t, 2, countPhysics(vg.Edges, false))
}

func TestRender_OverlappingTypeNames(t *testing.T) {
	eng := storedNode("n1", "Alice", "Engineer")
	swe := storedNode("n2", "Bob", "Software Engineer")

	vg, ok := Render([]common.Triple{triple(eng, "r1", "MENTORS", swe)}, DefaultRenderOptions())
	require.True(t, ok)

	var categoryEdges []VisualEdge
	for _, e := range vg.Edges {
		if !e.Physics {
			categoryEdges = append(categoryEdges, e)
		}
	}
	assert.ElementsMatch(t, []VisualEdge{
		{From: "category:Engineer", To: "n1"},
		{From: "category:Software Engineer", To: "n2"},
	}, categoryEdges)
}
