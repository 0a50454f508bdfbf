package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
)

func newFakeGitHub(t *testing.T, blobs map[string]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"default_branch": "trunk"})
	})
	mux.HandleFunc("/repos/octocat/hello/git/trees/trunk", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("recursive") != "1" {
			t.Errorf("tree request missing recursive=1")
		}
		var entries []map[string]any
		for path := range blobs {
			entries = append(entries, map[string]any{"path": path, "type": "blob", "size": len(blobs[path])})
		}
		entries = append(entries, map[string]any{"path": "docs", "type": "tree", "size": 0})
		_ = json.NewEncoder(w).Encode(map[string]any{"tree": entries, "truncated": false})
	})
	mux.HandleFunc("/repos/octocat/hello/contents/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.github.raw+json" {
			t.Errorf("Accept = %q", got)
		}
		if r.URL.Query().Get("ref") != "trunk" {
			t.Errorf("content request missing ref=trunk")
		}
		path := r.URL.Path[len("/repos/octocat/hello/contents/"):]
		content, ok := blobs[path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
	})

	return httptest.NewServer(mux)
}

func TestGitHubProviderFetchContent(t *testing.T) {
	blobs := map[string]string{
		"main.go":        "package main",
		"docs/guide.md":  "# Guide",
		"vendor/dep.go":  "package dep",
		"assets/img.png": "not fetched",
	}
	server := newFakeGitHub(t, blobs)
	defer server.Close()

	p := NewGitHubProvider(server.URL, "")
	files, err := p.FetchContent(context.Background(), "octocat/hello")
	if err != nil {
		t.Fatalf("FetchContent() error = %v", err)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	sort.Strings(paths)

	want := []string{"docs/guide.md", "main.go"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
	}

	for _, f := range files {
		if f.Path == "docs/guide.md" && f.Content != "# Guide" {
			t.Errorf("docs/guide.md content = %q", f.Content)
		}
	}
}

func TestGitHubProviderSendsToken(t *testing.T) {
	sawAuth := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer secret" {
			sawAuth = true
		}
		switch r.URL.Path {
		case "/repos/octocat/hello":
			_ = json.NewEncoder(w).Encode(map[string]string{"default_branch": "main"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"tree": []any{}})
		}
	}))
	defer server.Close()

	p := NewGitHubProvider(server.URL, "secret")
	if _, err := p.FetchContent(context.Background(), "octocat/hello"); err != nil {
		t.Fatalf("FetchContent() error = %v", err)
	}
	if !sawAuth {
		t.Error("requests did not carry the bearer token")
	}
}

func TestGitHubProviderRepoNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	p := NewGitHubProvider(server.URL, "")
	if _, err := p.FetchContent(context.Background(), "octocat/missing"); err == nil {
		t.Error("FetchContent() expected an error for a missing repository")
	}
}
