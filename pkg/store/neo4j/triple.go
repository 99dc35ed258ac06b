package neo4j

import (
	"context"
	"fmt"
	"regexp"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tos-analyser/backend/pkg/common"
)

// Relation types are interpolated into Cypher because they cannot be
// parameterized. Only sanitized identifiers pass this check.
var relationTypeRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// UpsertTriple merges the subject and object entities, the relation
// between them, and MENTIONED_IN provenance edges to the source chunk.
func (s *Store) UpsertTriple(ctx context.Context, triple common.Triple, chunkID string) error {
	if chunkID == "" {
		return fmt.Errorf("neo4j: chunk id required")
	}
	if !relationTypeRe.MatchString(triple.Relation) {
		return fmt.Errorf("neo4j: invalid relation type %q", triple.Relation)
	}

	cypher := fmt.Sprintf(`
MERGE (s:Entity {name: $subject})
MERGE (o:Entity {name: $object})
MERGE (s)-[r:%s {chunk_id: $chunk_id}]->(o)
MERGE (c:Chunk {id: $chunk_id})
MERGE (s)-[:MENTIONED_IN]->(c)
MERGE (o)-[:MENTIONED_IN]->(c)
`, "`"+triple.Relation+"`")

	return s.runWrite(ctx, cypher, map[string]any{
		"subject":  triple.Subject,
		"object":   triple.Object,
		"chunk_id": chunkID,
	})
}

// TriplesForChunk returns the relations extracted from one chunk.
// Provenance edges are excluded.
func (s *Store) TriplesForChunk(ctx context.Context, chunkID string) ([]common.Triple, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (s:Entity)-[r]->(o:Entity)
WHERE r.chunk_id = $chunk_id AND type(r) <> 'MENTIONED_IN'
RETURN s.name AS subject, type(r) AS relation, o.name AS object
`, map[string]any{"chunk_id": chunkID})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	recs, ok := records.([]*neo4j.Record)
	if !ok {
		return nil, fmt.Errorf("neo4j: unexpected result type %T", records)
	}

	triples := make([]common.Triple, 0, len(recs))
	for _, rec := range recs {
		subject, _ := rec.Get("subject")
		relation, _ := rec.Get("relation")
		object, _ := rec.Get("object")
		triples = append(triples, common.Triple{
			Subject:  asString(subject),
			Relation: asString(relation),
			Object:   asString(object),
		})
	}
	return triples, nil
}
