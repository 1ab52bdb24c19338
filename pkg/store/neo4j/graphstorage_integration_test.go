package neo4j

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"

	gonanoid "github.com/matoous/go-nanoid/v2"
	neo4jv5 "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStorage connects to the database named by NEO4J_TEST_URI and
// returns a storage confined to a fresh scope that is removed afterwards.
func newTestStorage(t *testing.T) (*GraphNeo4jStorage, neo4jv5.DriverWithContext) {
	t.Helper()
	uri := os.Getenv("NEO4J_TEST_URI")
	if uri == "" {
		t.Skip("NEO4J_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	driver, err := neo4jv5.NewDriverWithContext(
		uri,
		neo4jv5.BasicAuth(os.Getenv("NEO4J_TEST_USERNAME"), os.Getenv("NEO4J_TEST_PASSWORD"), ""),
	)
	require.NoError(t, err)
	require.NoError(t, driver.VerifyConnectivity(ctx))

	scope := "test-" + gonanoid.Must()
	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = neo4jv5.ExecuteQuery(ctx, driver,
			"MATCH (n {scope: $scope}) DETACH DELETE n",
			map[string]any{"scope": scope},
			neo4jv5.EagerResultTransformer,
		)
		_ = driver.Close(ctx)
	})

	return NewGraphNeo4jStorageWithDriver(driver, WithScope(scope)), driver
}

func countScoped(t *testing.T, driver neo4jv5.DriverWithContext, scope string, query string) int64 {
	t.Helper()
	res, err := neo4jv5.ExecuteQuery(context.Background(), driver, query,
		map[string]any{"scope": scope},
		neo4jv5.EagerResultTransformer,
	)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	count, _, err := neo4jv5.GetRecordValue[int64](res.Records[0], "c")
	require.NoError(t, err)
	return count
}

func TestGraphNeo4jStorage_MergeIsIdempotent(t *testing.T) {
	s, driver := newTestStorage(t)
	ctx := context.Background()

	jane := common.Node{ID: "Jane Smith", Type: "Person"}
	mit := common.Node{ID: "MIT", Type: "University", Properties: map[string]string{"name": "MIT"}}
	degree := common.Relationship{Source: jane, Target: mit, Type: "HAS_DEGREE_FROM"}

	for range 2 {
		require.NoError(t, s.MergeNode(ctx, jane))
		require.NoError(t, s.MergeNode(ctx, mit))
		matched, err := s.MergeRelationship(ctx, degree)
		require.NoError(t, err)
		assert.True(t, matched)
	}

	assert.Equal(t, int64(2), countScoped(t, driver, s.scope, "MATCH (n {scope: $scope}) RETURN count(n) AS c"))
	assert.Equal(t, int64(1), countScoped(t, driver, s.scope, "MATCH ({scope: $scope})-[r]->({scope: $scope}) RETURN count(r) AS c"))
}

func TestGraphNeo4jStorage_UnmatchedRelationship(t *testing.T) {
	s, driver := newTestStorage(t)
	ctx := context.Background()

	jane := common.Node{ID: "Jane Smith", Type: "Person"}
	require.NoError(t, s.MergeNode(ctx, jane))

	matched, err := s.MergeRelationship(ctx, common.Relationship{
		Source: jane,
		Target: common.Node{ID: "Nowhere", Type: "Company"},
		Type:   "WORKS_AT",
	})
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Equal(t, int64(1), countScoped(t, driver, s.scope, "MATCH (n {scope: $scope}) RETURN count(n) AS c"))
}

func TestGraphNeo4jStorage_FindSubgraph(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	jane := common.Node{ID: "Jane", Type: "Person"}
	mit := common.Node{ID: "MIT", Type: "University"}
	acme := common.Node{ID: "Acme", Type: "Company"}
	for _, n := range []common.Node{jane, mit, acme} {
		require.NoError(t, s.MergeNode(ctx, n))
	}
	_, err := s.MergeRelationship(ctx, common.Relationship{Source: jane, Target: mit, Type: "STUDIED_AT"})
	require.NoError(t, err)
	_, err = s.MergeRelationship(ctx, common.Relationship{Source: jane, Target: acme, Type: "WORKS_AT"})
	require.NoError(t, err)

	triples, err := s.FindSubgraph(ctx, []string{"MIT"}, 100)
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, "Jane", triples[0].Source.Name())
	assert.Equal(t, []string{"Person"}, triples[0].Source.Labels)
	assert.Equal(t, "STUDIED_AT", triples[0].Relationship.Type)
	assert.Equal(t, "MIT", triples[0].Target.Name())

	limited, err := s.FindSubgraph(ctx, []string{"Jane"}, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	empty, err := s.FindSubgraph(ctx, nil, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGraphNeo4jStorage_Ping(t *testing.T) {
	s, _ := newTestStorage(t)
	assert.NoError(t, s.Ping(t.Context()))
}
