package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tos-analyser/backend/internal/server/middleware"
	"github.com/tos-analyser/backend/pkg/ai"
	"github.com/tos-analyser/backend/pkg/logger"
)

// AnswerHandler answers a free-form question about the ingested
// documents, grounded in retrieved clause context. Failures degrade to
// a fixed apology so conversational clients always get an answer field.
func AnswerHandler(c echo.Context) error {
	type answerRequest struct {
		Query      string `json:"query" validate:"required"`
		K          int    `json:"k"`
		DocumentID string `json:"document_id"`
	}

	type answerResponse struct {
		Answer  string           `json:"answer"`
		Metrics *ai.ModelMetrics `json:"metrics,omitempty"`
	}

	data := new(answerRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, answerResponse{
			Answer: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, answerResponse{
			Answer: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	answer, err := app.Engine.Answer(ctx, data.Query, data.K, data.DocumentID)
	if err != nil || answer == "" {
		logger.Error("Answer generation failed", "err", err)
		return c.JSON(http.StatusOK, answerResponse{
			Answer: "An error occurred while generating a response",
		})
	}

	metrics := app.AiClient.GetMetrics()
	return c.JSON(http.StatusOK, answerResponse{
		Answer:  answer,
		Metrics: &metrics,
	})
}
