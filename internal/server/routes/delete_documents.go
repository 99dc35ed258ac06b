package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tos-analyser/backend/internal/server/middleware"
	"github.com/tos-analyser/backend/pkg/logger"
)

// DeleteAllDocumentsHandler wipes every stored chunk, entity and
// relation.
func DeleteAllDocumentsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	if err := app.Store.Clear(c.Request().Context()); err != nil {
		logger.Error("Failed to clear graph", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal server error",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "All documents deleted",
	})
}

// DeleteDocumentHandler removes one document's chunks and any entities
// no longer mentioned anywhere.
func DeleteDocumentHandler(c echo.Context) error {
	docID := c.Param("id")
	if docID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Missing document id",
		})
	}

	app := c.(*middleware.AppContext).App
	if err := app.Store.ClearNamespace(c.Request().Context(), docID); err != nil {
		logger.Error("Failed to delete document", "doc_id", docID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal server error",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Document deleted",
	})
}
