package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"repoqa/internal/contextutil"
	"repoqa/internal/indexer"
	"repoqa/internal/provider"
)

// RepositoryIndexer is the indexing operation the handler depends on.
type RepositoryIndexer interface {
	Index(ctx context.Context, repo string, force bool) (*indexer.Result, error)
}

// IndexHandler handles HTTP requests for indexing a repository.
// The request blocks until the run finishes and returns its counts.
type IndexHandler struct {
	indexerPipeline RepositoryIndexer
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(indexerPipeline RepositoryIndexer) *IndexHandler {
	return &IndexHandler{
		indexerPipeline: indexerPipeline,
	}
}

// IndexRequest represents the HTTP request payload for indexing.
type IndexRequest struct {
	Repo  string `json:"repo"`
	Force bool   `json:"force,omitempty"`
}

// IndexResponse represents the HTTP response payload for indexing.
type IndexResponse struct {
	AlreadyIndexed   bool `json:"already_indexed,omitempty"`
	FilesProcessed   int  `json:"files_processed"`
	ChunksCreated    int  `json:"chunks_created"`
	EmbeddingsStored int  `json:"embeddings_stored"`
}

// ServeHTTP indexes a repository and reports the run's counts.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !provider.ValidRepo(req.Repo) {
		logger.WarnContext(ctx, "invalid repository identifier", "repo", req.Repo)
		h.writeError(w, http.StatusBadRequest, "Repository must be in owner/name form")
		return
	}

	result, err := h.indexerPipeline.Index(ctx, req.Repo, req.Force)
	if err != nil {
		h.handleIndexError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(IndexResponse{
		AlreadyIndexed:   result.AlreadyIndexed,
		FilesProcessed:   result.FilesProcessed,
		ChunksCreated:    result.ChunksCreated,
		EmbeddingsStored: result.EmbeddingsStored,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleIndexError maps indexing pipeline errors to HTTP status codes.
func (h *IndexHandler) handleIndexError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "indexing pipeline error", "error", err)

	if errors.Is(err, indexer.ErrNoContent) {
		h.writeError(w, http.StatusUnprocessableEntity, "Repository has no indexable content")
		return
	}

	var indexingErr *indexer.IndexingError
	if errors.As(err, &indexingErr) {
		switch indexingErr.Stage {
		case indexer.StageChecking, indexer.StageStoring:
			h.writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		case indexer.StageFetching, indexer.StageEmbedding:
			h.writeError(w, http.StatusBadGateway, "External service error")
		default:
			h.writeError(w, http.StatusInternalServerError, "Failed to index repository")
		}
		return
	}

	h.writeError(w, http.StatusInternalServerError, "Failed to index repository")
}

// writeError writes an error response.
func (h *IndexHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
