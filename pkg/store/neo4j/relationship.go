package neo4j

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"
	"github.com/OFFIS-RIT/resumegraph/pkg/cypher"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"

	neo4jv5 "github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MergeRelationship upserts a directed edge of rel.Type between the nodes
// matched by (type, id) of rel.Source and rel.Target. Missing endpoints are
// never created; the call then returns false and writes nothing.
func (s *GraphNeo4jStorage) MergeRelationship(ctx context.Context, rel common.Relationship) (bool, error) {
	query := mergeRelationshipQuery(rel.Source.Type, rel.Target.Type, rel.Type, s.scope != "")
	params := map[string]any{
		"source_id": rel.Source.ID,
		"target_id": rel.Target.ID,
	}
	if s.scope != "" {
		params["scope"] = s.scope
	}

	session := s.session(ctx, neo4jv5.AccessModeWrite)
	defer session.Close(ctx)

	merged, err := session.ExecuteWrite(ctx, func(tx neo4jv5.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return false, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return false, err
		}
		return mergedFromRecord(record)
	})
	if err != nil {
		logger.Debug("[Neo4j] Statement failed", "statement", cypher.Inline(query, params))
		return false, fmt.Errorf(
			"merging relationship %s:%s -[%s]-> %s:%s: %w",
			rel.Source.Type, rel.Source.ID, rel.Type, rel.Target.Type, rel.Target.ID, err,
		)
	}

	return merged.(bool), nil
}

// mergedFromRecord reads the merged count of a relationship MERGE. Zero
// means one of the endpoints did not match.
func mergedFromRecord(record *neo4jv5.Record) (bool, error) {
	count, _, err := neo4jv5.GetRecordValue[int64](record, "merged")
	if err != nil {
		return false, fmt.Errorf("reading merged: %w", err)
	}
	return count > 0, nil
}
