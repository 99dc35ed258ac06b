// Package query answers questions over the ingested clause graph by
// combining vector retrieval with graph context.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tos-analyser/backend/pkg/ai"
	"github.com/tos-analyser/backend/pkg/common"
	"github.com/tos-analyser/backend/pkg/logger"
	"github.com/tos-analyser/backend/pkg/store"
)

// Engine retrieves relevant clauses and produces structured analyses
// and free-form answers over them.
type Engine struct {
	ai    ai.Client
	store store.GraphStorage

	index    string
	defaultK int
}

// NewEngineParams contains configuration options for creating an
// Engine.
type NewEngineParams struct {
	AI    ai.Client
	Store store.GraphStorage

	// Index is the vector index queried for similar chunks.
	Index string

	// DefaultK is the number of chunks retrieved when the caller does
	// not specify one. Defaults to 5.
	DefaultK int
}

// NewEngine creates an Engine.
func NewEngine(params NewEngineParams) *Engine {
	k := params.DefaultK
	if k <= 0 {
		k = 5
	}
	return &Engine{
		ai:       params.AI,
		store:    params.Store,
		index:    params.Index,
		defaultK: k,
	}
}

// SimilaritySearch embeds the query text and returns the most similar
// chunks, highest score first. Retrieval never fails the caller: any
// error is logged and an empty result returned.
func (e *Engine) SimilaritySearch(ctx context.Context, text string, k int, namespace string) []common.ScoredChunk {
	if k <= 0 {
		k = e.defaultK
	}

	vector, err := e.ai.GenerateEmbedding(ctx, text)
	if err != nil {
		logger.Warn("query embedding failed", "error", err)
		return nil
	}

	hits, err := e.store.VectorQuery(ctx, e.index, k, vector, namespace)
	if err != nil {
		logger.Warn("vector query failed", "error", err)
		return nil
	}
	return hits
}

// StructuredAnalysis classifies the given chunks into fairness labels.
// Each chunk is enriched with the triples extracted from it before
// being sent to the model. It returns the valid records along with the
// number of records dropped during validation.
func (e *Engine) StructuredAnalysis(ctx context.Context, chunks []common.ScoredChunk) ([]common.AnalysisRecord, int, error) {
	if len(chunks) == 0 {
		return []common.AnalysisRecord{}, 0, nil
	}

	blocks := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		blocks = append(blocks, e.enrichChunk(ctx, chunk))
	}

	schema, err := json.Marshal(ai.GenerateSchema(common.AnalysisRecord{}))
	if err != nil {
		return nil, 0, fmt.Errorf("generate schema: %w", err)
	}

	prompt := fmt.Sprintf(ai.AnalysisPrompt, strings.Join(blocks, "\n\n"), schema)
	response, err := e.ai.GenerateCompletion(ctx, prompt)
	if err != nil {
		return nil, 0, fmt.Errorf("generate analysis: %w", err)
	}

	records, err := ParseAnalysisRecords(response)
	if err != nil {
		return nil, 0, err
	}

	valid := make([]common.AnalysisRecord, 0, len(records))
	dropped := 0
	for _, record := range records {
		if err := record.Validate(); err != nil {
			logger.Warn("dropping invalid analysis record", "error", err)
			dropped++
			continue
		}
		valid = append(valid, record)
	}
	return valid, dropped, nil
}

// Answer retrieves context for a question and generates a free-form
// answer grounded in it.
func (e *Engine) Answer(ctx context.Context, question string, k int, namespace string) (string, error) {
	hits := e.SimilaritySearch(ctx, question, k, namespace)

	blocks := make([]string, 0, len(hits))
	for _, hit := range hits {
		blocks = append(blocks, e.enrichChunk(ctx, hit))
	}
	contextBlock := "None"
	if len(blocks) > 0 {
		contextBlock = strings.Join(blocks, "\n\n")
	}

	prompt := fmt.Sprintf(ai.AnswerPrompt, contextBlock, question)
	return e.ai.GenerateCompletion(ctx, prompt)
}

// enrichChunk renders a chunk together with its triples. Triple lookup
// failures degrade to a block without graph context.
func (e *Engine) enrichChunk(ctx context.Context, chunk common.ScoredChunk) string {
	var b strings.Builder
	b.WriteString(chunk.Text)
	b.WriteString("\nTriples:\n")

	triples, err := e.store.TriplesForChunk(ctx, chunk.ChunkID)
	if err != nil {
		logger.Warn("triple lookup failed", "chunk_id", chunk.ChunkID, "error", err)
		triples = nil
	}
	if len(triples) == 0 {
		b.WriteString("None")
		return b.String()
	}

	for i, t := range triples {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "(%s, %s, %s)", t.Subject, t.Relation, t.Object)
	}
	return b.String()
}
