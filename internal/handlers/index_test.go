package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"repoqa/internal/indexer"
)

// stubIndexer returns a canned result or error.
type stubIndexer struct {
	result    *indexer.Result
	err       error
	lastRepo  string
	lastForce bool
}

func (s *stubIndexer) Index(_ context.Context, repo string, force bool) (*indexer.Result, error) {
	s.lastRepo = repo
	s.lastForce = force
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestIndexHandler(t *testing.T) {
	stub := &stubIndexer{
		result: &indexer.Result{FilesProcessed: 12, ChunksCreated: 40, EmbeddingsStored: 40},
	}
	handler := NewIndexHandler(stub)

	body := `{"repo":"octocat/hello","force":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp IndexResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.FilesProcessed != 12 || resp.ChunksCreated != 40 || resp.EmbeddingsStored != 40 {
		t.Errorf("response = %+v", resp)
	}
	if resp.AlreadyIndexed {
		t.Error("AlreadyIndexed should be false")
	}

	if stub.lastRepo != "octocat/hello" || !stub.lastForce {
		t.Errorf("indexer received repo=%q force=%v", stub.lastRepo, stub.lastForce)
	}
}

func TestIndexHandlerAlreadyIndexed(t *testing.T) {
	handler := NewIndexHandler(&stubIndexer{result: &indexer.Result{AlreadyIndexed: true}})

	body := `{"repo":"octocat/hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp IndexResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.AlreadyIndexed {
		t.Error("AlreadyIndexed should be set")
	}
}

func TestIndexHandlerValidation(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{
			name:       "wrong method",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			body:       "nope",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid repo",
			method:     http.MethodPost,
			body:       `{"repo":"just-a-name"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewIndexHandler(&stubIndexer{})

			req := httptest.NewRequest(tt.method, "/api/v1/index", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestIndexHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "no indexable content",
			err:        &indexer.IndexingError{Repo: "o/r", Stage: indexer.StageFetching, Err: indexer.ErrNoContent},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "vector store down during check",
			err:        &indexer.IndexingError{Repo: "o/r", Stage: indexer.StageChecking, Err: errors.New("dial refused")},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "vector store down during write",
			err:        &indexer.IndexingError{Repo: "o/r", Stage: indexer.StageStoring, Err: errors.New("dial refused")},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "content source error",
			err:        &indexer.IndexingError{Repo: "o/r", Stage: indexer.StageFetching, Err: errors.New("404")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "embedding service error",
			err:        &indexer.IndexingError{Repo: "o/r", Stage: indexer.StageEmbedding, Err: errors.New("rate limited")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unclassified error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewIndexHandler(&stubIndexer{err: tt.err})

			body := `{"repo":"octocat/hello"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/index", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
