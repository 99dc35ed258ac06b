// Package graph turns raw documents into stored chunks and an
// entity-relation graph.
package graph

import (
	"context"

	"github.com/pkoukk/tiktoken-go"

	"github.com/tos-analyser/backend/pkg/ai"
	"github.com/tos-analyser/backend/pkg/store"
)

// TextSource loads the plain text of a document from a path.
type TextSource interface {
	Load(ctx context.Context, path string) (string, error)
}

// Pipeline ingests documents: it segments text into clauses, embeds
// and stores them, and extracts an entity-relation graph.
type Pipeline struct {
	loader TextSource
	ai     ai.Client
	store  store.GraphStorage

	tokenEncoder    *tiktoken.Tiktoken
	maxClauseTokens int
	maxRetries      int
}

// NewPipelineParams contains configuration options for creating a
// Pipeline.
type NewPipelineParams struct {
	Loader TextSource
	AI     ai.Client
	Store  store.GraphStorage

	// MaxClauseTokens caps the token length of a stored chunk.
	// Defaults to 512.
	MaxClauseTokens int

	// MaxRetries bounds attempts of triple extraction calls. Defaults
	// to 1, i.e. no retries.
	MaxRetries int
}

// NewPipeline creates a Pipeline.
func NewPipeline(params NewPipelineParams) (*Pipeline, error) {
	encoder, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return nil, err
	}

	maxTokens := params.MaxClauseTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	return &Pipeline{
		loader: params.Loader,
		ai:     params.AI,
		store:  params.Store,

		tokenEncoder:    encoder,
		maxClauseTokens: maxTokens,
		maxRetries:      maxRetries,
	}, nil
}
