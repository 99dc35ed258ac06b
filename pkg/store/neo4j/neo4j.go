// Package neo4j implements store.GraphStorage on a Neo4j database.
package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tos-analyser/backend/internal/util"
)

// Store persists chunks and the entity-relation graph in Neo4j.
type Store struct {
	Driver   neo4j.DriverWithContext
	Database string
}

// NewFromEnvParams overrides individual connection settings. Zero
// values fall back to the NEO4J_* environment variables.
type NewFromEnvParams struct {
	URI      string
	User     string
	Password string
	Database string
}

// NewFromEnv connects to Neo4j using NEO4J_URI, NEO4J_USER,
// NEO4J_PASSWORD and NEO4J_DATABASE and verifies connectivity.
func NewFromEnv(params NewFromEnvParams) (*Store, error) {
	uri := params.URI
	if uri == "" {
		uri = util.GetEnvString("NEO4J_URI", "bolt://localhost:7687")
	}
	user := params.User
	if user == "" {
		user = util.GetEnvString("NEO4J_USER", "neo4j")
	}
	password := params.Password
	if password == "" {
		password = util.GetEnvString("NEO4J_PASSWORD", "")
	}
	database := params.Database
	if database == "" {
		database = util.GetEnvString("NEO4J_DATABASE", "")
	}

	timeoutSec := int(util.GetEnvNumeric("NEO4J_TIMEOUT_SECONDS", 10))
	maxPool := int(util.GetEnvNumeric("NEO4J_MAX_POOL_SIZE", 50))

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""), func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = maxPool
		cfg.SocketConnectTimeout = time.Duration(timeoutSec) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: init driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j: verify connectivity: %w", err)
	}

	return &Store{
		Driver:   driver,
		Database: database,
	}, nil
}

// Close shuts down the underlying driver and its connection pool.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.Driver == nil {
		return nil
	}
	err := s.Driver.Close(ctx)
	s.Driver = nil
	return err
}

func (s *Store) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return s.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.Database,
	})
}

func (s *Store) readSession(ctx context.Context) neo4j.SessionWithContext {
	return s.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.Database,
	})
}

// runWrite executes a single statement inside a write transaction and
// consumes the result.
func (s *Store) runWrite(ctx context.Context, cypher string, params map[string]any) error {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}
