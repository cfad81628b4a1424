package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"pentacook/backend/pkg/apperr"
	"pentacook/backend/pkg/logger"
)

// Store handles all Neo4j database operations. Sessions are opened per call,
// so a single Store is safe to share across concurrent requests.
type Store struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewStore creates a new graph store
func NewStore(driver neo4j.DriverWithContext) *Store {
	return &Store{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (s *Store) Close() error {
	return s.driver.Close(context.Background())
}

// Run executes a mutating query. Every value travels as a query parameter,
// never formatted into the query text.
func (s *Store) Run(ctx context.Context, cypher string, params map[string]interface{}) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return apperr.NewStoreError("run", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return apperr.NewStoreError("run", err)
	}
	return nil
}

// Query executes a read query and returns all fully materialized rows.
func (s *Store) Query(ctx context.Context, cypher string, params map[string]interface{}) ([]*neo4j.Record, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, apperr.NewStoreError("query", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, apperr.NewStoreError("query", err)
	}
	return records, nil
}
