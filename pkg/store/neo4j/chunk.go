package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tos-analyser/backend/pkg/common"
)

// CreateChunk persists a chunk node with its text, embedding and
// document namespace. The chunk ID must already be assigned.
func (s *Store) CreateChunk(ctx context.Context, chunk common.Chunk) error {
	if chunk.ID == "" {
		return fmt.Errorf("neo4j: chunk id required")
	}

	return s.runWrite(ctx, `
MERGE (c:Chunk {id: $id})
SET c.text = $text,
    c.doc_id = $doc_id,
    c.embedding = $embedding,
    c.created_at = $created_at
`, map[string]any{
		"id":         chunk.ID,
		"text":       chunk.Text,
		"doc_id":     chunk.DocID,
		"embedding":  toFloat64(chunk.Embedding),
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// ChunksForNamespace returns all chunks of a document, oldest first.
// Embeddings are not loaded.
func (s *Store) ChunksForNamespace(ctx context.Context, namespace string) ([]common.Chunk, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Chunk {doc_id: $namespace})
RETURN c.id AS id, c.text AS text
ORDER BY c.created_at ASC
`, map[string]any{"namespace": namespace})
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

	chunks := make([]common.Chunk, 0, len(recs))
	for _, rec := range recs {
		id, _ := rec.Get("id")
		text, _ := rec.Get("text")
		chunks = append(chunks, common.Chunk{
			ID:    asString(id),
			DocID: namespace,
			Text:  asString(text),
		})
	}
	return chunks, nil
}

// The driver only accepts []any or []float64 as list parameters.
func toFloat64(vec []float32) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
