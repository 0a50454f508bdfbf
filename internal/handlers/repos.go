package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"repoqa/internal/contextutil"
	"repoqa/internal/provider"
	"repoqa/internal/storage"
)

// RepositoryRemover removes a repository's stored chunks and catalog entry.
type RepositoryRemover interface {
	Remove(ctx context.Context, repo string) error
}

// ReposHandler lists indexed repositories and removes them from the index.
type ReposHandler struct {
	repoStore storage.RepoStore
	remover   RepositoryRemover
}

// NewReposHandler creates a new ReposHandler.
func NewReposHandler(repoStore storage.RepoStore, remover RepositoryRemover) *ReposHandler {
	return &ReposHandler{
		repoStore: repoStore,
		remover:   remover,
	}
}

// RepoResponse represents one catalog entry in the HTTP response.
type RepoResponse struct {
	Repo      string `json:"repo"`
	Files     int    `json:"files"`
	Chunks    int    `json:"chunks"`
	IndexedAt string `json:"indexed_at"`
}

// List returns every indexed repository.
func (h *ReposHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	records, err := h.repoStore.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list repositories", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to list repositories")
		return
	}

	repos := make([]RepoResponse, len(records))
	for i, record := range records {
		repos[i] = RepoResponse{
			Repo:      record.Repo,
			Files:     record.Files,
			Chunks:    record.Chunks,
			IndexedAt: record.IndexedAt.UTC().Format(time.RFC3339),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(repos); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// Delete removes a repository from the index.
func (h *ReposHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	repo := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")
	if !provider.ValidRepo(repo) {
		logger.WarnContext(ctx, "invalid repository identifier", "repo", repo)
		h.writeError(w, http.StatusBadRequest, "Repository must be in owner/name form")
		return
	}

	if err := h.remover.Remove(ctx, repo); err != nil {
		logger.ErrorContext(ctx, "failed to remove repository", "repo", repo, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError writes an error response.
func (h *ReposHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
