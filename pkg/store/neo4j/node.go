package neo4j

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"
	"github.com/OFFIS-RIT/resumegraph/pkg/cypher"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"

	neo4jv5 "github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MergeNode upserts node keyed by its type label and id and sets the name
// property. Running it twice with the same node changes nothing.
func (s *GraphNeo4jStorage) MergeNode(ctx context.Context, node common.Node) error {
	query := mergeNodeQuery(node.Type, s.scope != "")
	params := map[string]any{
		"id":   node.ID,
		"name": node.Name(),
	}
	if s.scope != "" {
		params["scope"] = s.scope
	}

	session := s.session(ctx, neo4jv5.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4jv5.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		logger.Debug("[Neo4j] Statement failed", "statement", cypher.Inline(query, params))
		return fmt.Errorf("merging node %s:%s: %w", node.Type, node.ID, err)
	}

	return nil
}
