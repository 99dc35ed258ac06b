package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tos-analyser/backend/pkg/loader"
	"github.com/tos-analyser/backend/pkg/loader/text"
)

func newTextOnlyLoader() *loader.Loader {
	txt := text.NewTextLoader()
	return loader.NewLoader(loader.NewLoaderParams{
		PDF:  nil,
		HTML: nil,
		Text: txt,
	})
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "terms.txt")
	if err := os.WriteFile(path, []byte("You agree to the terms."), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := newTextOnlyLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "You agree to the terms." {
		t.Fatalf("Load = %q", got)
	}
}

func TestLoadExtensionCaseInsensitive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "TERMS.TXT")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := newTextOnlyLoader().Load(context.Background(), path); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	t.Parallel()

	tests := []string{"terms.docx", "terms", "archive.tar.gz"}

	for _, path := range tests {
		path := path
		t.Run(path, func(t *testing.T) {
			_, err := newTextOnlyLoader().Load(context.Background(), path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, loader.ErrUnsupportedFormat) {
				t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
			}
			var ingestErr *loader.IngestionError
			if !errors.As(err, &ingestErr) {
				t.Fatalf("expected IngestionError, got %T", err)
			}
		})
	}
}

func TestLoadMissingFormatHandler(t *testing.T) {
	t.Parallel()

	_, err := newTextOnlyLoader().Load(context.Background(), "terms.pdf")
	if !errors.Is(err, loader.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for unconfigured handler, got %v", err)
	}
}

func TestErrorUnwrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("broken xref table")
	var err error = &loader.IngestionError{
		Op:  "load terms.pdf",
		Err: &loader.PDFExtractionError{Path: "terms.pdf", Page: 4, Err: cause},
	}

	var pdfErr *loader.PDFExtractionError
	if !errors.As(err, &pdfErr) {
		t.Fatalf("expected PDFExtractionError in chain, got %v", err)
	}
	if pdfErr.Page != 4 {
		t.Fatalf("page = %d, want 4", pdfErr.Page)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected root cause in chain")
	}
}
