package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"repoqa/internal/config"
	"repoqa/internal/http"
	"repoqa/internal/indexer"
	"repoqa/internal/llm"
	"repoqa/internal/provider"
	"repoqa/internal/rag"
	"repoqa/internal/storage"
	"repoqa/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	repoStore := storage.NewRepoRepo(db)

	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	batcher := llm.NewBatcher(embedder, cfg.EmbedBatchSize, cfg.EmbedBatchDelay)

	var contentProvider provider.ContentProvider
	switch cfg.ContentSource {
	case "local":
		contentProvider = provider.NewLocalProvider(cfg.ContentRoot)
		slog.Info("Content provider ready", "source", "local", "root", cfg.ContentRoot)
	default:
		contentProvider = provider.NewGitHubProvider(cfg.GitHubAPIURL, cfg.GitHubToken)
		slog.Info("Content provider ready", "source", "github", "api_url", cfg.GitHubAPIURL)
	}

	indexerPipeline := indexer.NewPipeline(
		contentProvider,
		batcher,
		vectorStore,
		repoStore,
		cfg.QdrantCollection,
		cfg.MaxChunkSize,
	)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	ragEngine := rag.NewEngine(
		batcher,
		vectorStore,
		cfg.QdrantCollection,
		llmClient,
		cfg.TopK,
	)
	slog.Info("Query engine initialized", "top_k", cfg.TopK)

	deps := &http.Deps{
		RAGEngine:   ragEngine,
		Indexer:     indexerPipeline,
		Remover:     indexerPipeline,
		RepoStore:   repoStore,
		VectorStore: vectorStore,
		Collection:  cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
