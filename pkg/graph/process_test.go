package graph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tos-analyser/backend/pkg/ai"
	"github.com/tos-analyser/backend/pkg/common"
	"github.com/tos-analyser/backend/pkg/loader"
)

type fakeLoader struct {
	text string
	err  error
}

func (l *fakeLoader) Load(ctx context.Context, path string) (string, error) {
	return l.text, l.err
}

type fakeAI struct {
	completion    string
	completionErr error
	embeddingErr  error
}

func (a *fakeAI) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return a.completion, a.completionErr
}

func (a *fakeAI) GenerateEmbedding(ctx context.Context, input string) ([]float32, error) {
	if a.embeddingErr != nil {
		return nil, a.embeddingErr
	}
	return []float32{0.1, 0.2}, nil
}

func (a *fakeAI) GenerateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error) {
	if a.embeddingErr != nil {
		return nil, a.embeddingErr
	}
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

func (a *fakeAI) ResetMetrics()               {}
func (a *fakeAI) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

type tripleRecord struct {
	triple  common.Triple
	chunkID string
}

type fakeStore struct {
	clearedNamespaces []string
	chunks            []common.Chunk
	triples           []tripleRecord

	createChunkErr error
}

func (s *fakeStore) EnsureSchema(ctx context.Context) error { return nil }
func (s *fakeStore) Clear(ctx context.Context) error        { return nil }

func (s *fakeStore) ClearNamespace(ctx context.Context, namespace string) error {
	s.clearedNamespaces = append(s.clearedNamespaces, namespace)
	return nil
}

func (s *fakeStore) CreateChunk(ctx context.Context, chunk common.Chunk) error {
	if s.createChunkErr != nil {
		return s.createChunkErr
	}
	s.chunks = append(s.chunks, chunk)
	return nil
}

func (s *fakeStore) UpsertTriple(ctx context.Context, triple common.Triple, chunkID string) error {
	s.triples = append(s.triples, tripleRecord{triple: triple, chunkID: chunkID})
	return nil
}

func (s *fakeStore) VectorQuery(ctx context.Context, index string, k int, vector []float32, namespace string) ([]common.ScoredChunk, error) {
	return nil, nil
}

func (s *fakeStore) TriplesForChunk(ctx context.Context, chunkID string) ([]common.Triple, error) {
	return nil, nil
}

func (s *fakeStore) ChunksForNamespace(ctx context.Context, namespace string) ([]common.Chunk, error) {
	return s.chunks, nil
}

func (s *fakeStore) Close(ctx context.Context) error { return nil }

func newTestPipeline(t *testing.T, l *fakeLoader, a *fakeAI, s *fakeStore) *Pipeline {
	t.Helper()
	p, err := NewPipeline(NewPipelineParams{
		Loader: l,
		AI:     a,
		Store:  s,
	})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

func TestIngestDocument(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	aiClient := &fakeAI{completion: "(User, agrees_to, Terms)"}
	p := newTestPipeline(t, &fakeLoader{text: "First clause. Second clause."}, aiClient, store)

	if err := p.IngestDocument(context.Background(), "doc-1", "tos.txt"); err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}

	if len(store.clearedNamespaces) != 1 || store.clearedNamespaces[0] != "doc-1" {
		t.Fatalf("expected namespace doc-1 cleared, got %v", store.clearedNamespaces)
	}

	if len(store.chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(store.chunks))
	}
	seen := make(map[string]bool)
	for _, chunk := range store.chunks {
		if chunk.ID == "" {
			t.Fatal("chunk stored without id")
		}
		if seen[chunk.ID] {
			t.Fatalf("duplicate chunk id %q", chunk.ID)
		}
		seen[chunk.ID] = true
		if chunk.DocID != "doc-1" {
			t.Fatalf("chunk doc id = %q, want doc-1", chunk.DocID)
		}
		if len(chunk.Embedding) == 0 {
			t.Fatalf("chunk %q stored without embedding", chunk.ID)
		}
	}

	if len(store.triples) != 2 {
		t.Fatalf("expected one triple per chunk, got %d", len(store.triples))
	}
	for _, rec := range store.triples {
		if !seen[rec.chunkID] {
			t.Fatalf("triple references unknown chunk %q", rec.chunkID)
		}
		want := common.Triple{Subject: "User", Relation: "agrees_to", Object: "Terms"}
		if rec.triple != want {
			t.Fatalf("stored triple = %#v, want %#v", rec.triple, want)
		}
	}
}

func TestIngestDocumentIDsUniqueAcrossRuns(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	aiClient := &fakeAI{completionErr: errors.New("model down")}
	p := newTestPipeline(t, &fakeLoader{text: "Only clause."}, aiClient, store)

	for i := 0; i < 3; i++ {
		if err := p.IngestDocument(context.Background(), "doc-1", "tos.txt"); err != nil {
			t.Fatalf("IngestDocument run %d: %v", i, err)
		}
	}

	seen := make(map[string]bool)
	for _, chunk := range store.chunks {
		if seen[chunk.ID] {
			t.Fatalf("chunk id %q reused across ingestions", chunk.ID)
		}
		seen[chunk.ID] = true
	}
}

func TestIngestDocumentExtractionFailureIsSoft(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	aiClient := &fakeAI{completionErr: errors.New("model down")}
	p := newTestPipeline(t, &fakeLoader{text: "First clause. Second clause."}, aiClient, store)

	if err := p.IngestDocument(context.Background(), "doc-1", "tos.txt"); err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}
	if len(store.chunks) != 2 {
		t.Fatalf("expected chunks stored despite extraction failure, got %d", len(store.chunks))
	}
	if len(store.triples) != 0 {
		t.Fatalf("expected no triples, got %d", len(store.triples))
	}
}

func TestIngestDocumentEmbeddingFailureAborts(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	aiClient := &fakeAI{embeddingErr: errors.New("embedder down")}
	p := newTestPipeline(t, &fakeLoader{text: "Only clause."}, aiClient, store)

	err := p.IngestDocument(context.Background(), "doc-1", "tos.txt")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var ingestErr *loader.IngestionError
	if !errors.As(err, &ingestErr) {
		t.Fatalf("expected IngestionError, got %T", err)
	}
	if len(store.chunks) != 0 {
		t.Fatalf("expected no chunks stored, got %d", len(store.chunks))
	}
}

func TestIngestDocumentEmptyDocument(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	p := newTestPipeline(t, &fakeLoader{text: "   \n  "}, &fakeAI{}, store)

	err := p.IngestDocument(context.Background(), "doc-1", "tos.txt")
	if err == nil {
		t.Fatal("expected error for empty document, got nil")
	}
}

func TestIngestDocumentLoaderErrorPropagates(t *testing.T) {
	t.Parallel()

	loadErr := &loader.PDFExtractionError{Path: "tos.pdf", Page: 3, Err: errors.New("bad xref")}
	p := newTestPipeline(t, &fakeLoader{err: loadErr}, &fakeAI{}, &fakeStore{})

	err := p.IngestDocument(context.Background(), "doc-1", "tos.pdf")
	var pdfErr *loader.PDFExtractionError
	if !errors.As(err, &pdfErr) {
		t.Fatalf("expected PDFExtractionError, got %v", err)
	}
}

func TestFitClausesSplitsOversized(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t, &fakeLoader{}, &fakeAI{}, &fakeStore{})
	p.maxClauseTokens = 8

	long := strings.Repeat("termination and liability ", 20)
	parts := p.fitClauses([]string{"short clause", long})

	if len(parts) < 3 {
		t.Fatalf("expected oversized clause split, got %d parts", len(parts))
	}
	if parts[0] != "short clause" {
		t.Fatalf("short clause modified: %q", parts[0])
	}
	for _, part := range parts[1:] {
		if n := len(p.tokenEncoder.Encode(part, nil, nil)); n > p.maxClauseTokens {
			t.Fatalf("part exceeds token budget: %d tokens", n)
		}
	}

	var rejoined strings.Builder
	for _, part := range parts[1:] {
		rejoined.WriteString(part)
	}
	if rejoined.String() != long {
		t.Fatal("split parts do not reassemble the original clause")
	}
}
