package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"repoqa/internal/contextutil"
	"repoqa/internal/provider"
	"repoqa/internal/rag"
)

// AskHandler handles HTTP requests for repository questions.
type AskHandler struct {
	ragEngine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(ragEngine rag.Engine) *AskHandler {
	return &AskHandler{
		ragEngine: ragEngine,
	}
}

// AskRequest represents the HTTP request payload for repository questions.
// This mirrors rag.AskRequest but is defined here for HTTP layer separation.
type AskRequest struct {
	Repo     string `json:"repo"`
	Question string `json:"question"`
	K        int    `json:"k,omitempty"`
}

// SourceResponse represents one cited source in the HTTP response.
type SourceResponse struct {
	File    string  `json:"file"`
	Score   float32 `json:"score"`
	Preview string  `json:"preview"`
}

// AskResponse represents the HTTP response payload for repository questions.
type AskResponse struct {
	Answer  string           `json:"answer"`
	Sources []SourceResponse `json:"sources"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP answers a question about an indexed repository.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in request")
		h.writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if !provider.ValidRepo(req.Repo) {
		logger.WarnContext(ctx, "invalid repository identifier", "repo", req.Repo)
		h.writeError(w, http.StatusBadRequest, "Repository must be in owner/name form")
		return
	}
	if req.K < 0 {
		req.K = 0
	}

	ragResp, err := h.ragEngine.Ask(ctx, rag.AskRequest{
		Repo:     req.Repo,
		Question: req.Question,
		K:        req.K,
	})
	if err != nil {
		h.handleAskError(w, r, err)
		return
	}

	sources := make([]SourceResponse, len(ragResp.Sources))
	for i, source := range ragResp.Sources {
		sources[i] = SourceResponse{
			File:    source.File,
			Score:   source.Score,
			Preview: source.Preview,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(AskResponse{
		Answer:  ragResp.Answer,
		Sources: sources,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleAskError maps query engine errors to HTTP status codes.
func (h *AskHandler) handleAskError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "query engine error", "error", err)

	if errors.Is(err, rag.ErrNotIndexed) {
		h.writeError(w, http.StatusConflict, "Repository is not indexed yet. Index it first via POST /api/v1/index.")
		return
	}

	var queryErr *rag.QueryError
	if errors.As(err, &queryErr) {
		switch queryErr.Stage {
		case rag.StageSearch:
			h.writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		case rag.StageEmbed, rag.StageGenerate:
			h.writeError(w, http.StatusBadGateway, "External service error")
		default:
			h.writeError(w, http.StatusInternalServerError, "Failed to answer question")
		}
		return
	}

	h.writeError(w, http.StatusInternalServerError, "Failed to answer question")
}

// writeError writes an error response.
func (h *AskHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
