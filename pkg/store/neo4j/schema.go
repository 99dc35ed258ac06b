package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tos-analyser/backend/internal/util"
	"github.com/tos-analyser/backend/pkg/logger"
)

// VectorIndexName is the index used for chunk similarity search.
const VectorIndexName = "chunk_embeddings"

// EnsureSchema creates the uniqueness constraints and the chunk vector
// index. Statements use IF NOT EXISTS so repeated calls are cheap;
// individual failures are logged and do not abort the remaining
// statements, since restricted users may lack schema privileges.
func (s *Store) EnsureSchema(ctx context.Context) error {
	dim := int(util.GetEnvNumeric("AI_EMBED_DIM", 384))

	statements := []string{
		`CREATE CONSTRAINT chunk_id_unique IF NOT EXISTS FOR (c:Chunk) REQUIRE c.id IS UNIQUE`,
		`CREATE CONSTRAINT entity_name_unique IF NOT EXISTS FOR (e:Entity) REQUIRE e.name IS UNIQUE`,
		fmt.Sprintf(`CREATE VECTOR INDEX %s IF NOT EXISTS
FOR (c:Chunk) ON (c.embedding)
OPTIONS {indexConfig: {
  `+"`vector.dimensions`"+`: %d,
  `+"`vector.similarity_function`"+`: 'cosine'
}}`, VectorIndexName, dim),
	}

	session := s.writeSession(ctx)
	defer session.Close(ctx)

	var firstErr error
	for _, stmt := range statements {
		res, err := session.Run(ctx, stmt, nil)
		if err == nil {
			_, err = res.Consume(ctx)
		}
		if err != nil {
			logger.Warn("schema statement failed, continuing", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Clear removes every chunk, entity and relation from the database.
func (s *Store) Clear(ctx context.Context) error {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, stmt := range []string{
			`MATCH (c:Chunk) DETACH DELETE c`,
			`MATCH (e:Entity) DETACH DELETE e`,
		} {
			res, err := tx.Run(ctx, stmt, nil)
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// ClearNamespace removes the chunks of one document and any entities
// left without a mention afterwards. Entities shared with other
// documents survive.
func (s *Store) ClearNamespace(ctx context.Context, namespace string) error {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Chunk {doc_id: $namespace})
DETACH DELETE c
`, map[string]any{"namespace": namespace})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}

		res, err = tx.Run(ctx, `
MATCH (e:Entity)
WHERE NOT (e)-[:MENTIONED_IN]->(:Chunk)
DETACH DELETE e
`, nil)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}
