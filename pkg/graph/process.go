package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tos-analyser/backend/pkg/common"
	"github.com/tos-analyser/backend/pkg/loader"
	"github.com/tos-analyser/backend/pkg/logger"
	"github.com/tos-analyser/backend/pkg/segment"
)

// IngestDocument loads a document, replaces any previous ingestion
// under the same document ID, and persists its clauses as embedded
// chunks together with the triples extracted from them.
//
// Embedding failures abort the ingestion; extraction failures on
// individual clauses do not.
func (p *Pipeline) IngestDocument(ctx context.Context, docID string, path string) error {
	if err := p.store.ClearNamespace(ctx, docID); err != nil {
		return &loader.IngestionError{Op: "clear namespace", Err: err}
	}

	text, err := p.loader.Load(ctx, path)
	if err != nil {
		return err
	}

	clauses := p.fitClauses(segment.Clauses(text))
	if len(clauses) == 0 {
		return &loader.IngestionError{Op: "segment", Err: fmt.Errorf("no clauses found in document")}
	}
	logger.Info("segmented document", "doc_id", docID, "clauses", len(clauses))

	embeddings, err := p.ai.GenerateEmbeddings(ctx, clauses)
	if err != nil {
		return &loader.IngestionError{Op: "embed", Err: err}
	}
	if len(embeddings) != len(clauses) {
		return &loader.IngestionError{
			Op:  "embed",
			Err: fmt.Errorf("embedding count mismatch: got %d want %d", len(embeddings), len(clauses)),
		}
	}

	for i, clause := range clauses {
		chunk := common.Chunk{
			ID:        uuid.NewString(),
			DocID:     docID,
			Text:      clause,
			Embedding: embeddings[i],
		}
		if err := p.store.CreateChunk(ctx, chunk); err != nil {
			return &loader.IngestionError{Op: "store chunk", Err: err}
		}

		for _, triple := range p.extractTriples(ctx, clause) {
			if err := p.store.UpsertTriple(ctx, triple, chunk.ID); err != nil {
				return &loader.IngestionError{Op: "store triple", Err: err}
			}
		}
	}

	logger.Info("ingested document", "doc_id", docID, "chunks", len(clauses))
	return nil
}

// fitClauses splits clauses exceeding the token budget into equally
// sized pieces so no chunk blows past the embedding context window.
func (p *Pipeline) fitClauses(clauses []string) []string {
	out := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		tokens := p.tokenEncoder.Encode(clause, nil, nil)
		if len(tokens) <= p.maxClauseTokens {
			out = append(out, clause)
			continue
		}

		parts := (len(tokens) + p.maxClauseTokens - 1) / p.maxClauseTokens
		size := (len(tokens) + parts - 1) / parts
		for start := 0; start < len(tokens); start += size {
			end := min(start+size, len(tokens))
			out = append(out, p.tokenEncoder.Decode(tokens[start:end]))
		}
	}
	return out
}
