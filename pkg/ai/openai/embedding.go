package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"

	"github.com/tos-analyser/backend/internal/util"
	"github.com/tos-analyser/backend/pkg/ai"
)

const defaultDimensions = 384

// GenerateEmbedding creates a vector embedding for a single input text.
func (c *Client) GenerateEmbedding(ctx context.Context, input string) ([]float32, error) {
	res, err := c.GenerateEmbeddings(ctx, []string{input})
	if err != nil {
		return nil, err
	}
	if len(res) != 1 {
		return nil, &ai.AdapterError{
			Capability: "embedding",
			Err:        fmt.Errorf("unexpected embedding result size: got %d want 1", len(res)),
		}
	}
	return res[0], nil
}

// GenerateEmbeddings creates one embedding per input in a single
// request, preserving input order. Every returned vector has exactly
// the configured dimensionality; blank inputs embed to zero vectors.
func (c *Client) GenerateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error) {
	dim := int(util.GetEnvNumeric("AI_EMBED_DIM", defaultDimensions))
	if len(inputs) == 0 {
		return nil, nil
	}
	if c.EmbeddingClient == nil {
		return nil, &ai.AdapterError{Capability: "embedding", Err: fmt.Errorf("no embedding client configured")}
	}

	idxMap, nonBlank, out := normalizeEmbeddingInputs(inputs, dim)
	if len(nonBlank) == 0 {
		return out, nil
	}

	rCtx, cancel := context.WithTimeout(ctx, time.Minute*time.Duration(c.timeoutMin))
	defer cancel()

	if err := c.embeddingLock.Acquire(rCtx, 1); err != nil {
		return nil, &ai.AdapterError{Capability: "embedding", Err: err}
	}
	defer c.embeddingLock.Release(1)

	body := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: nonBlank},
		Model: c.embeddingModel,
	}

	start := time.Now()
	response, err := c.EmbeddingClient.Embeddings.New(rCtx, body)
	if err != nil {
		return nil, &ai.AdapterError{Capability: "embedding", Err: err}
	}

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens: int(response.Usage.PromptTokens),
		TotalTokens: int(response.Usage.TotalTokens),
		DurationMs:  time.Since(start).Milliseconds(),
	})

	if len(response.Data) != len(nonBlank) {
		return nil, &ai.AdapterError{
			Capability: "embedding",
			Err:        fmt.Errorf("embedding response size mismatch: got %d want %d", len(response.Data), len(nonBlank)),
		}
	}

	for _, embedding := range response.Data {
		dataIdx := int(embedding.Index)
		if dataIdx < 0 || dataIdx >= len(nonBlank) {
			return nil, &ai.AdapterError{
				Capability: "embedding",
				Err:        fmt.Errorf("embedding index out of range: %d", embedding.Index),
			}
		}
		out[idxMap[dataIdx]] = fitDimensions(embedding.Embedding, dim)
	}
	for i := range out {
		if out[i] == nil {
			return nil, &ai.AdapterError{
				Capability: "embedding",
				Err:        fmt.Errorf("missing embedding for input %d", i),
			}
		}
	}

	return out, nil
}

func normalizeEmbeddingInputs(inputs []string, dim int) (idxMap []int, nonBlank []string, out [][]float32) {
	idxMap = make([]int, 0, len(inputs))
	nonBlank = make([]string, 0, len(inputs))
	out = make([][]float32, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in) == "" {
			out[i] = make([]float32, dim)
			continue
		}
		idxMap = append(idxMap, i)
		nonBlank = append(nonBlank, in)
	}
	return idxMap, nonBlank, out
}

// fitDimensions truncates or zero-pads a vector to the configured
// dimensionality so the stored vector index never sees a mismatch.
func fitDimensions(values []float64, dim int) []float32 {
	vec := make([]float32, 0, dim)
	for _, v := range values {
		if len(vec) >= dim {
			break
		}
		vec = append(vec, float32(v))
	}
	if len(vec) < dim {
		padded := make([]float32, dim)
		copy(padded, vec)
		vec = padded
	}
	return vec
}
