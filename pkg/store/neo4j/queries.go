package neo4j

import (
	"fmt"

	"github.com/OFFIS-RIT/resumegraph/pkg/cypher"
)

func mergeNodeQuery(label string, scoped bool) string {
	key := "{id: $id}"
	if scoped {
		key = "{id: $id, scope: $scope}"
	}
	return fmt.Sprintf("MERGE (n:%s %s)\nSET n.name = $name", cypher.QuoteIdentifier(label), key)
}

func mergeRelationshipQuery(sourceLabel, targetLabel, relType string, scoped bool) string {
	sourceKey, targetKey := "{id: $source_id}", "{id: $target_id}"
	if scoped {
		sourceKey = "{id: $source_id, scope: $scope}"
		targetKey = "{id: $target_id, scope: $scope}"
	}
	return fmt.Sprintf(
		"MATCH (source:%s %s)\nMATCH (target:%s %s)\nMERGE (source)-[r:%s]->(target)\nRETURN count(r) AS merged",
		cypher.QuoteIdentifier(sourceLabel), sourceKey,
		cypher.QuoteIdentifier(targetLabel), targetKey,
		cypher.QuoteIdentifier(relType),
	)
}

func subgraphQuery(scoped bool) string {
	where := "n.name IN $names OR m.name IN $names"
	if scoped {
		where = "n.scope = $scope AND m.scope = $scope AND (" + where + ")"
	}
	return "MATCH (n)-[r]->(m)\nWHERE " + where + "\nRETURN n, r, m\nLIMIT $limit"
}
