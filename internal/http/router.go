package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"repoqa/internal/handlers"
	"repoqa/internal/rag"
	"repoqa/internal/storage"
	"repoqa/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RAGEngine   rag.Engine
	Indexer     handlers.RepositoryIndexer
	Remover     handlers.RepositoryRemover
	RepoStore   storage.RepoStore
	VectorStore vectorstore.VectorStore
	Collection  string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.RAGEngine)
	indexHandler := handlers.NewIndexHandler(deps.Indexer)
	reposHandler := handlers.NewReposHandler(deps.RepoStore, deps.Remover)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)

	r.Method(http.MethodGet, "/api/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodPost, "/index", indexHandler)
		r.Get("/repos", reposHandler.List)
		r.Delete("/repos/{owner}/{name}", reposHandler.Delete)
	})

	return r
}
