package graph

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/OFFIS-RIT/resumegraph/pkg/ai"
	"github.com/OFFIS-RIT/resumegraph/pkg/common"
)

type memRel struct {
	id     string
	source string
	target string
	typ    string
}

// memStore is an in-memory store.GraphStorage with MERGE semantics.
type memStore struct {
	mu    sync.Mutex
	nodes map[string]common.StoredNode
	order []string
	rels  []memRel

	failNode  func(common.Node) error
	failRel   func(common.Relationship) error
	findErr   error
	findCalls int
	lastLimit int
	lastNames []string
}

func newMemStore() *memStore {
	return &memStore{nodes: map[string]common.StoredNode{}}
}

func memNodeID(typ, id string) string {
	return fmt.Sprintf("n:%s:%s", typ, id)
}

func (s *memStore) MergeNode(ctx context.Context, node common.Node) error {
	if s.failNode != nil {
		if err := s.failNode(node); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memNodeID(node.Type, node.ID)
	n, ok := s.nodes[key]
	if !ok {
		n = common.StoredNode{
			ElementID:  key,
			Labels:     []string{node.Type},
			Properties: map[string]any{"id": node.ID},
		}
		s.order = append(s.order, key)
	}
	n.Properties["name"] = node.Name()
	s.nodes[key] = n
	return nil
}

func (s *memStore) MergeRelationship(ctx context.Context, rel common.Relationship) (bool, error) {
	if s.failRel != nil {
		if err := s.failRel(rel); err != nil {
			return false, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	src := memNodeID(rel.Source.Type, rel.Source.ID)
	tgt := memNodeID(rel.Target.Type, rel.Target.ID)
	if _, ok := s.nodes[src]; !ok {
		return false, nil
	}
	if _, ok := s.nodes[tgt]; !ok {
		return false, nil
	}
	for _, r := range s.rels {
		if r.source == src && r.target == tgt && r.typ == rel.Type {
			return true, nil
		}
	}
	s.rels = append(s.rels, memRel{
		id:     fmt.Sprintf("r:%d", len(s.rels)),
		source: src,
		target: tgt,
		typ:    rel.Type,
	})
	return true, nil
}

func (s *memStore) FindSubgraph(ctx context.Context, names []string, limit int) ([]common.Triple, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.findCalls++
	s.lastLimit = limit
	s.lastNames = names
	if s.findErr != nil {
		return nil, s.findErr
	}

	out := []common.Triple{}
	for _, r := range s.rels {
		if len(out) >= limit {
			break
		}
		src, tgt := s.nodes[r.source], s.nodes[r.target]
		if !slices.Contains(names, src.Name()) && !slices.Contains(names, tgt.Name()) {
			continue
		}
		out = append(out, common.Triple{
			Source: src,
			Relationship: common.StoredRelationship{
				ElementID:      r.id,
				Type:           r.typ,
				StartElementID: r.source,
				EndElementID:   r.target,
			},
			Target: tgt,
		})
	}
	return out, nil
}

func (s *memStore) Ping(ctx context.Context) error {
	return nil
}

func (s *memStore) Close(ctx context.Context) error {
	return nil
}

func (s *memStore) nodeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

func (s *memStore) relCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rels)
}

// fakeAI answers every structured request with a canned JSON document.
type fakeAI struct {
	response string
	err      error

	calls   int
	prompt  string
	options ai.GenerateOptions
	usage   ai.ModelMetrics
}

func (f *fakeAI) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	f.calls++
	f.prompt = prompt
	f.options = ai.GenerateOptions{}
	for _, o := range opts {
		o(&f.options)
	}
	if f.err != nil {
		return f.err
	}
	return ai.UnmarshalFlexible(f.response, out)
}

func (f *fakeAI) LoadModel(ctx context.Context) error {
	return nil
}

func (f *fakeAI) GetMetrics() ai.ModelMetrics {
	return f.usage
}

const janeSmithResponse = `{
  "nodes": [
    {"id": "Jane Smith", "type": "Person", "properties": []},
    {"id": "Master's Degree", "type": "Degree", "properties": []},
    {"id": "MIT", "type": "University", "properties": []}
  ],
  "relationships": [
    {"source_node_id": "Jane Smith", "source_node_type": "Person", "target_node_id": "Master's Degree", "target_node_type": "Degree", "type": "HAS_DEGREE"},
    {"source_node_id": "Master's Degree", "source_node_type": "Degree", "target_node_id": "MIT", "target_node_type": "University", "type": "AWARDED_BY"}
  ]
}`
