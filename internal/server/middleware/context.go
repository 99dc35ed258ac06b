package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tos-analyser/backend/pkg/ai"
	"github.com/tos-analyser/backend/pkg/graph"
	"github.com/tos-analyser/backend/pkg/query"
	"github.com/tos-analyser/backend/pkg/store"
)

// App bundles the shared clients handlers need.
type App struct {
	Store    store.GraphStorage
	AiClient ai.Client
	Pipeline *graph.Pipeline
	Engine   *query.Engine

	UploadDir string
}

// AppContext extends the request context with the shared application
// state.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request context in an AppContext.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
