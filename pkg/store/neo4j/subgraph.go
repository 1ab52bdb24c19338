package neo4j

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"
	"github.com/OFFIS-RIT/resumegraph/pkg/cypher"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"
	"github.com/OFFIS-RIT/resumegraph/pkg/store"

	neo4jv5 "github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// FindSubgraph returns up to limit (n)-[r]->(m) triples where the name of n
// or m is one of names.
func (s *GraphNeo4jStorage) FindSubgraph(ctx context.Context, names []string, limit int) ([]common.Triple, error) {
	names = store.DedupeStrings(names)
	if len(names) == 0 {
		return []common.Triple{}, nil
	}

	query := subgraphQuery(s.scope != "")
	params := map[string]any{
		"names": names,
		"limit": int64(limit),
	}
	if s.scope != "" {
		params["scope"] = s.scope
	}

	session := s.session(ctx, neo4jv5.AccessModeRead)
	defer session.Close(ctx)

	res, err := session.ExecuteRead(ctx, func(tx neo4jv5.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		triples := make([]common.Triple, 0)
		for result.Next(ctx) {
			triple, err := tripleFromRecord(result.Record())
			if err != nil {
				return nil, err
			}
			triples = append(triples, triple)
		}
		if err := result.Err(); err != nil {
			return nil, err
		}
		return triples, nil
	})
	if err != nil {
		logger.Debug("[Neo4j] Statement failed", "statement", cypher.Inline(query, params))
		return nil, fmt.Errorf("querying subgraph: %w", err)
	}

	return res.([]common.Triple), nil
}

func tripleFromRecord(record *neo4jv5.Record) (common.Triple, error) {
	n, _, err := neo4jv5.GetRecordValue[neo4jv5.Node](record, "n")
	if err != nil {
		return common.Triple{}, fmt.Errorf("reading n: %w", err)
	}
	r, _, err := neo4jv5.GetRecordValue[neo4jv5.Relationship](record, "r")
	if err != nil {
		return common.Triple{}, fmt.Errorf("reading r: %w", err)
	}
	m, _, err := neo4jv5.GetRecordValue[neo4jv5.Node](record, "m")
	if err != nil {
		return common.Triple{}, fmt.Errorf("reading m: %w", err)
	}

	return common.Triple{
		Source: toStoredNode(n),
		Relationship: common.StoredRelationship{
			ElementID:      r.ElementId,
			Type:           r.Type,
			StartElementID: r.StartElementId,
			EndElementID:   r.EndElementId,
		},
		Target: toStoredNode(m),
	}, nil
}

func toStoredNode(n neo4jv5.Node) common.StoredNode {
	labels := make([]string, len(n.Labels))
	copy(labels, n.Labels)
	return common.StoredNode{
		ElementID:  n.ElementId,
		Labels:     labels,
		Properties: n.Props,
	}
}
