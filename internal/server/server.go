package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/OFFIS-RIT/resumegraph/internal/server/middleware"
	"github.com/OFFIS-RIT/resumegraph/internal/storage"
	"github.com/OFFIS-RIT/resumegraph/internal/util"
	"github.com/OFFIS-RIT/resumegraph/pkg/ai"
	oai "github.com/OFFIS-RIT/resumegraph/pkg/ai/ollama"
	gai "github.com/OFFIS-RIT/resumegraph/pkg/ai/openai"
	"github.com/OFFIS-RIT/resumegraph/pkg/graph"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"
	"github.com/OFFIS-RIT/resumegraph/pkg/store"
	gneo4j "github.com/OFFIS-RIT/resumegraph/pkg/store/neo4j"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
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

// NewEcho builds the HTTP server with all middleware and routes.
func NewEcho(app *mid.App, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("2M"))

	RegisterRoutes(e, gatherer)
	return e
}

func newAIClient() (ai.GraphAIClient, error) {
	// empty selects the adapter's default model
	model := util.GetEnv("AI_CHAT_EXTRACT_MODEL")

	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			ExtractionModel: model,

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return client, nil
	default:
		return gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			ExtractionModel: model,

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		}), nil
	}
}

func newGraphStore(ctx context.Context) (store.GraphStorage, error) {
	params := gneo4j.NewGraphNeo4jStorageParams{
		URI:      util.GetEnvString("NEO4J_URI", "neo4j://localhost:7687"),
		Username: util.GetEnvString("NEO4J_USERNAME", "neo4j"),
		Password: util.GetEnv("NEO4J_PASSWORD"),
		Database: util.GetEnv("NEO4J_DATABASE"),
		Scope:    util.GetEnv("GRAPH_SCOPE"),
	}

	var s *gneo4j.GraphNeo4jStorage
	tries := int(util.GetEnvNumeric("NEO4J_CONNECT_RETRIES", 5))
	err := util.RetryWithBackoff(ctx, tries, time.Second, func(ctx context.Context) error {
		conn, err := gneo4j.NewGraphNeo4jStorage(ctx, params)
		if err != nil {
			logger.Warn("Neo4j not reachable yet", "uri", params.URI, "err", err)
			return err
		}
		s = conn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newArtifactStore(ctx context.Context) (*storage.ArtifactStore, error) {
	bucket := util.GetEnv("AWS_BUCKET")
	if bucket == "" {
		return nil, nil
	}

	client, err := storage.NewS3Client(ctx, storage.S3Params{
		Region:    util.GetEnv("AWS_REGION"),
		Endpoint:  util.GetEnv("AWS_ENDPOINT"),
		AccessKey: util.GetEnv("AWS_ACCESS_KEY"),
		SecretKey: util.GetEnv("AWS_SECRET_KEY"),
	})
	if err != nil {
		return nil, err
	}
	publicEndpoint := util.GetEnvString("AWS_PUBLIC_ENDPOINT", util.GetEnv("AWS_ENDPOINT"))
	return storage.NewArtifactStore(client, bucket, publicEndpoint)
}

func Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aiClient, err := newAIClient()
	if err != nil {
		logger.Fatal("Failed to create AI client", "err", err)
	}
	if err := aiClient.LoadModel(ctx); err != nil {
		logger.Warn("Failed to preload extraction model", "err", err)
	}

	graphStore, err := newGraphStore(ctx)
	if err != nil {
		logger.Fatal("Failed to connect to Neo4j", "err", err)
	}
	defer graphStore.Close(context.Background())

	artifacts, err := newArtifactStore(ctx)
	if err != nil {
		logger.Fatal("Failed to create artifact store", "err", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := graph.NewMetrics(registry)
	if err != nil {
		logger.Fatal("Failed to register metrics", "err", err)
	}
	if err := graph.RegisterModelMetrics(registry, aiClient); err != nil {
		logger.Fatal("Failed to register model metrics", "err", err)
	}

	graphClient, err := graph.NewGraphClient(graph.NewGraphClientParams{
		AIClient: aiClient,
		Store:    graphStore,

		AllowedNodes:         util.GetEnvList("GRAPH_ALLOWED_NODES"),
		AllowedRelationships: util.GetEnvList("GRAPH_ALLOWED_RELATIONSHIPS"),

		Temperature: util.GetEnvNumeric("AI_CHAT_TEMPERATURE", 0),
		Thinking:    util.GetEnv("AI_CHAT_THINKING"),

		SubgraphLimit: int(util.GetEnvNumeric("GRAPH_SUBGRAPH_LIMIT", graph.DefaultSubgraphLimit)),
		Metrics:       metrics,
	})
	if err != nil {
		logger.Fatal("Failed to create graph client", "err", err)
	}

	e := NewEcho(&mid.App{
		Graph:     graphClient,
		Store:     graphStore,
		Artifacts: artifacts,
	}, registry)

	go func() {
		port := util.GetEnvString("PORT", "8080")
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
