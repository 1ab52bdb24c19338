package neo4j

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/resumegraph/pkg/logger"

	neo4jv5 "github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphNeo4jStorage implements store.GraphStorage on top of a Neo4j
// database. Each operation opens its own session and runs exactly one
// statement in a managed transaction.
//
// A GraphNeo4jStorage should be created using NewGraphNeo4jStorage or
// NewGraphNeo4jStorageWithDriver.
type GraphNeo4jStorage struct {
	driver   neo4jv5.DriverWithContext
	database string
	scope    string
	ownsConn bool
}

// NewGraphNeo4jStorageParams defines the connection parameters.
//
// Database selects the Neo4j database; empty uses the server default.
// Scope is an optional namespace key. When empty all writes and reads go
// to one shared graph.
type NewGraphNeo4jStorageParams struct {
	URI      string
	Username string
	Password string
	Database string
	Scope    string
}

// GraphNeo4jStorageOption configures a GraphNeo4jStorage.
type GraphNeo4jStorageOption func(*GraphNeo4jStorage)

// WithDatabase selects the database used by every session.
func WithDatabase(database string) GraphNeo4jStorageOption {
	return func(s *GraphNeo4jStorage) {
		s.database = database
	}
}

// WithScope restricts the storage to nodes carrying the given scope key.
func WithScope(scope string) GraphNeo4jStorageOption {
	return func(s *GraphNeo4jStorage) {
		s.scope = scope
	}
}

// NewGraphNeo4jStorage connects to Neo4j and verifies connectivity.
//
// Example:
//
//	s, err := neo4j.NewGraphNeo4jStorage(ctx, neo4j.NewGraphNeo4jStorageParams{
//		URI:      "neo4j://localhost:7687",
//		Username: "neo4j",
//		Password: "password",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close(ctx)
func NewGraphNeo4jStorage(ctx context.Context, params NewGraphNeo4jStorageParams) (*GraphNeo4jStorage, error) {
	driver, err := neo4jv5.NewDriverWithContext(
		params.URI,
		neo4jv5.BasicAuth(params.Username, params.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("connecting to neo4j: %w", err)
	}

	logger.Debug("[Neo4j] Connected", "uri", params.URI, "database", params.Database, "scope", params.Scope)

	s := NewGraphNeo4jStorageWithDriver(driver, WithDatabase(params.Database), WithScope(params.Scope))
	s.ownsConn = true
	return s, nil
}

// NewGraphNeo4jStorageWithDriver wraps an already-authenticated driver. The
// caller keeps ownership of the driver; Close does not close it.
func NewGraphNeo4jStorageWithDriver(driver neo4jv5.DriverWithContext, opts ...GraphNeo4jStorageOption) *GraphNeo4jStorage {
	s := &GraphNeo4jStorage{driver: driver}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Ping verifies that the database can be reached with the configured
// credentials.
func (s *GraphNeo4jStorage) Ping(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j unreachable: %w", err)
	}
	return nil
}

// Close releases the driver if it was created by NewGraphNeo4jStorage.
func (s *GraphNeo4jStorage) Close(ctx context.Context) error {
	if !s.ownsConn {
		return nil
	}
	return s.driver.Close(ctx)
}

func (s *GraphNeo4jStorage) session(ctx context.Context, mode neo4jv5.AccessMode) neo4jv5.SessionWithContext {
	return s.driver.NewSession(ctx, neo4jv5.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   mode,
	})
}
