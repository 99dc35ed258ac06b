// Package store defines the persistence interface for the clause graph.
package store

import (
	"context"

	"github.com/tos-analyser/backend/pkg/common"
)

// GraphStorage is the persistence contract for chunks, entities and
// relations. Implementations must be safe for concurrent use.
type GraphStorage interface {
	// EnsureSchema creates constraints and indexes required by the
	// other operations. It is idempotent.
	EnsureSchema(ctx context.Context) error

	// Clear removes all stored chunks, entities and relations.
	Clear(ctx context.Context) error

	// ClearNamespace removes the chunks of a single document together
	// with entities that are no longer mentioned by any chunk.
	ClearNamespace(ctx context.Context, namespace string) error

	// CreateChunk persists a chunk node with its text and embedding.
	CreateChunk(ctx context.Context, chunk common.Chunk) error

	// UpsertTriple merges subject and object entities, the relation
	// between them, and provenance edges to the chunk the triple was
	// extracted from.
	UpsertTriple(ctx context.Context, triple common.Triple, chunkID string) error

	// VectorQuery returns up to k chunks ranked by vector similarity,
	// highest score first. An empty namespace searches all documents.
	VectorQuery(ctx context.Context, index string, k int, vector []float32, namespace string) ([]common.ScoredChunk, error)

	// TriplesForChunk returns the relations extracted from a chunk,
	// excluding provenance edges.
	TriplesForChunk(ctx context.Context, chunkID string) ([]common.Triple, error)

	// ChunksForNamespace returns all chunks of a document in insertion
	// order.
	ChunksForNamespace(ctx context.Context, namespace string) ([]common.Chunk, error)

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}
