package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tos-analyser/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "ToS Analyser API",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Document routes
	e.POST("/ingest", routes.IngestDocumentHandler)
	e.DELETE("/documents", routes.DeleteAllDocumentsHandler)
	e.DELETE("/documents/:id", routes.DeleteDocumentHandler)

	// Query routes
	e.POST("/query", routes.QueryHandler)
	e.POST("/query/answer", routes.AnswerHandler)
}
