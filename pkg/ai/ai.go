// Package ai defines the normalized interface to the language-model and
// embedding capabilities. Every backend returns plain strings and plain
// vectors; response-shape quirks are absorbed inside the adapters, never
// by callers.
package ai

import (
	"context"
	"fmt"
)

// GenerateOptions holds configuration for generation requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
}

// GenerateOption is a functional option for configuring generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system
// prompts to prepend to the request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling
// temperature. Lower values make outputs more deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// ModelMetrics contains accumulated performance metrics from model calls.
type ModelMetrics struct {
	InputTokens  int   `json:"input_tokens"`
	OutputTokens int   `json:"output_tokens"`
	TotalTokens  int   `json:"total_tokens"`
	DurationMs   int64 `json:"duration_ms"`
}

// Client is the language-model and embedding capability consumed by the
// ingestion pipeline and the retrieval engine.
//
// GenerateEmbeddings returns one fixed-dimension vector per input, in
// input order. GenerateCompletion is synchronous and returns the raw
// model text; callers own any structural parsing of it.
type Client interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)

	GenerateEmbedding(ctx context.Context, input string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error)

	ResetMetrics()
	GetMetrics() ModelMetrics
}

// AdapterError wraps a failed call to an external model capability so
// callers can distinguish adapter faults from their own logic errors.
type AdapterError struct {
	Capability string
	Err        error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s capability call failed: %v", e.Capability, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }
