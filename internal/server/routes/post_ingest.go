package routes

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/tos-analyser/backend/internal/server/middleware"
	"github.com/tos-analyser/backend/pkg/common"
	"github.com/tos-analyser/backend/pkg/loader"
	"github.com/tos-analyser/backend/pkg/logger"
)

// IngestDocumentHandler accepts a document upload (multipart/form-data,
// field "file"), ingests it into the clause graph and returns an
// initial analysis of the whole document.
func IngestDocumentHandler(c echo.Context) error {
	type ingestResponse struct {
		Message    string                  `json:"message"`
		DocumentID string                  `json:"document_id,omitempty"`
		Analysis   []common.AnalysisRecord `json:"analysis,omitempty"`
	}

	upload, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ingestResponse{
			Message: "Invalid request body",
		})
	}

	src, err := upload.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ingestResponse{
			Message: "Could not open file",
		})
	}
	defer src.Close()

	app := c.(*middleware.AppContext).App
	docID := uuid.NewString()

	fID, err := gonanoid.New()
	if err != nil {
		logger.Error("Failed to generate file id", "err", err)
		return c.JSON(http.StatusInternalServerError, ingestResponse{
			Message: "Internal server error",
		})
	}

	// The original filename is untrusted; only its extension survives.
	path := filepath.Join(app.UploadDir, fID+filepath.Ext(upload.Filename))
	dst, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create upload file", "err", err)
		return c.JSON(http.StatusInternalServerError, ingestResponse{
			Message: "Internal server error",
		})
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		logger.Error("Failed to write upload file", "err", err)
		return c.JSON(http.StatusInternalServerError, ingestResponse{
			Message: "Internal server error",
		})
	}
	dst.Close()
	defer os.Remove(path)

	ctx := c.Request().Context()
	if err := app.Pipeline.IngestDocument(ctx, docID, path); err != nil {
		logger.Error("Ingestion failed", "doc_id", docID, "err", err)

		var pdfErr *loader.PDFExtractionError
		var htmlErr *loader.HTMLExtractionError
		if errors.As(err, &pdfErr) || errors.As(err, &htmlErr) || errors.Is(err, loader.ErrUnsupportedFormat) {
			return c.JSON(http.StatusUnprocessableEntity, ingestResponse{
				Message: "Could not extract text from document",
			})
		}
		return c.JSON(http.StatusInternalServerError, ingestResponse{
			Message: "Internal server error",
		})
	}

	chunks, err := app.Store.ChunksForNamespace(ctx, docID)
	if err != nil {
		logger.Error("Failed to load chunks for analysis", "doc_id", docID, "err", err)
		return c.JSON(http.StatusOK, ingestResponse{
			Message:    "Document ingested, initial analysis unavailable",
			DocumentID: docID,
		})
	}

	scored := make([]common.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		scored = append(scored, common.ScoredChunk{
			Text:    chunk.Text,
			ChunkID: chunk.ID,
		})
	}

	analysis, dropped, err := app.Engine.StructuredAnalysis(ctx, scored)
	if err != nil {
		logger.Error("Initial analysis failed", "doc_id", docID, "err", err)
		return c.JSON(http.StatusOK, ingestResponse{
			Message:    "Document ingested, initial analysis unavailable",
			DocumentID: docID,
		})
	}
	if dropped > 0 {
		logger.Warn("Dropped invalid analysis records", "doc_id", docID, "count", dropped)
	}

	return c.JSON(http.StatusOK, ingestResponse{
		Message:    "Document ingested successfully",
		DocumentID: docID,
		Analysis:   analysis,
	})
}
