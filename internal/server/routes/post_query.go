package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tos-analyser/backend/internal/server/middleware"
	"github.com/tos-analyser/backend/pkg/common"
	"github.com/tos-analyser/backend/pkg/logger"
)

// QueryHandler retrieves the clauses most similar to the query and
// returns their structured fairness analysis.
func QueryHandler(c echo.Context) error {
	type queryRequest struct {
		Query      string `json:"query" validate:"required"`
		K          int    `json:"k"`
		DocumentID string `json:"document_id"`
	}

	type queryResponse struct {
		Message  string                  `json:"message"`
		Error    string                  `json:"error,omitempty"`
		Analysis []common.AnalysisRecord `json:"analysis"`
	}

	data := new(queryRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message:  "Invalid request body",
			Analysis: []common.AnalysisRecord{},
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message:  "Invalid request body",
			Analysis: []common.AnalysisRecord{},
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	hits := app.Engine.SimilaritySearch(ctx, data.Query, data.K, data.DocumentID)
	if len(hits) == 0 {
		return c.JSON(http.StatusOK, queryResponse{
			Message:  "No matching clauses found",
			Analysis: []common.AnalysisRecord{},
		})
	}

	analysis, dropped, err := app.Engine.StructuredAnalysis(ctx, hits)
	if err != nil {
		logger.Error("Analysis failed", "err", err)
		return c.JSON(http.StatusOK, queryResponse{
			Message:  "Query processed",
			Error:    "Failed to generate analysis",
			Analysis: []common.AnalysisRecord{},
		})
	}
	if dropped > 0 {
		logger.Warn("Dropped invalid analysis records", "count", dropped)
	}

	return c.JSON(http.StatusOK, queryResponse{
		Message:  "Query processed",
		Analysis: analysis,
	})
}
