package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tos-analyser/backend/pkg/common"
)

// VectorQuery returns up to k chunks ranked by cosine similarity to
// the given vector, highest score first. A non-empty namespace
// restricts results to one document.
func (s *Store) VectorQuery(
	ctx context.Context,
	index string,
	k int,
	vector []float32,
	namespace string,
) ([]common.ScoredChunk, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
CALL db.index.vector.queryNodes($index, $k, $embedding)
YIELD node AS chunk, score
WHERE $namespace = '' OR chunk.doc_id = $namespace
RETURN chunk.text AS text, chunk.id AS chunk_id, score
ORDER BY score DESC
`, map[string]any{
			"index":     index,
			"k":         k,
			"embedding": toFloat64(vector),
			"namespace": namespace,
		})
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

	hits := make([]common.ScoredChunk, 0, len(recs))
	for _, rec := range recs {
		text, _ := rec.Get("text")
		chunkID, _ := rec.Get("chunk_id")
		score, _ := rec.Get("score")
		hits = append(hits, common.ScoredChunk{
			Text:    asString(text),
			ChunkID: asString(chunkID),
			Score:   asFloat64(score),
		})
	}
	return hits, nil
}
