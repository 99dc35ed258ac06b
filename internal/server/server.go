// Package server wires the HTTP API together.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	mid "github.com/tos-analyser/backend/internal/server/middleware"
	"github.com/tos-analyser/backend/internal/util"
	"github.com/tos-analyser/backend/pkg/ai"
	oai "github.com/tos-analyser/backend/pkg/ai/ollama"
	gai "github.com/tos-analyser/backend/pkg/ai/openai"
	"github.com/tos-analyser/backend/pkg/graph"
	"github.com/tos-analyser/backend/pkg/loader"
	htmlloader "github.com/tos-analyser/backend/pkg/loader/html"
	pdfloader "github.com/tos-analyser/backend/pkg/loader/pdf"
	textloader "github.com/tos-analyser/backend/pkg/loader/text"
	"github.com/tos-analyser/backend/pkg/logger"
	"github.com/tos-analyser/backend/pkg/query"
	neo4jstore "github.com/tos-analyser/backend/pkg/store/neo4j"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func newAiClient() ai.Client {
	adapter := util.GetEnv("AI_ADAPTER")

	switch adapter {
	case "ollama":
		client, err := oai.NewClient(oai.NewClientParams{
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return gai.NewClient(gai.NewClientParams{
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),

			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),
			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnv("AI_EMBED_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 10)),
		})
	}
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := neo4jstore.NewFromEnv(neo4jstore.NewFromEnvParams{})
	if err != nil {
		logger.Fatal("Failed to connect to graph database", "err", err)
	}
	defer store.Close(ctx)

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Warn("Schema setup incomplete", "err", err)
	}

	aiClient := newAiClient()

	docLoader := loader.NewLoader(loader.NewLoaderParams{
		PDF:  pdfloader.NewPDFLoader(),
		HTML: htmlloader.NewHTMLLoader(),
		Text: textloader.NewTextLoader(),
	})

	pipeline, err := graph.NewPipeline(graph.NewPipelineParams{
		Loader: docLoader,
		AI:     aiClient,
		Store:  store,

		MaxClauseTokens: int(util.GetEnvNumeric("INGEST_MAX_CLAUSE_TOKENS", 512)),
		MaxRetries:      int(util.GetEnvNumeric("MAX_RETRIES", 1)),
	})
	if err != nil {
		logger.Fatal("Failed to create ingestion pipeline", "err", err)
	}

	engine := query.NewEngine(query.NewEngineParams{
		AI:    aiClient,
		Store: store,

		Index:    neo4jstore.VectorIndexName,
		DefaultK: int(util.GetEnvNumeric("QUERY_DEFAULT_K", 5)),
	})

	uploadDir := util.GetEnvString("UPLOAD_DIR", os.TempDir())
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Fatal("Failed to create upload directory", "err", err)
	}

	app := &mid.App{
		Store:    store,
		AiClient: aiClient,
		Pipeline: pipeline,
		Engine:   engine,

		UploadDir: uploadDir,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("32M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
