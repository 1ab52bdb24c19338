package store

import (
	"context"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"
)

// GraphStorage defines the interface for persisting extracted graphs and
// reading subgraphs back. Every call is a single statement against the
// store; no call spans more than one write.
type GraphStorage interface {
	// MergeNode upserts a node keyed by (node.Type, node.ID) and sets its
	// name property to node.Name().
	MergeNode(ctx context.Context, node common.Node) error

	// MergeRelationship upserts a directed edge between two existing nodes.
	// It reports false when either endpoint could not be matched, in which
	// case nothing was written.
	MergeRelationship(ctx context.Context, rel common.Relationship) (bool, error)

	// FindSubgraph returns up to limit triples where either endpoint's name
	// is one of names.
	FindSubgraph(ctx context.Context, names []string, limit int) ([]common.Triple, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	Close(ctx context.Context) error
}
