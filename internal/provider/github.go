package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"repoqa/internal/contextutil"
)

// fetchWorkers bounds concurrent blob downloads per repository.
const fetchWorkers = 8

// GitHubProvider fetches repository contents through the GitHub REST API.
type GitHubProvider struct {
	BaseURL string
	Token   string
	client  *http.Client
}

// NewGitHubProvider creates a provider against the given API base URL
// (https://api.github.com for github.com; override for GitHub Enterprise or tests).
// token may be empty for public repositories, at reduced rate limits.
func NewGitHubProvider(baseURL, token string) *GitHubProvider {
	return &GitHubProvider{
		BaseURL: baseURL,
		Token:   token,
		client:  http.DefaultClient,
	}
}

type repoInfo struct {
	DefaultBranch string `json:"default_branch"`
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type treeResponse struct {
	Tree      []treeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// FetchContent lists the default branch tree and downloads every eligible blob.
func (p *GitHubProvider) FetchContent(ctx context.Context, repo string) ([]File, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var info repoInfo
	if err := p.getJSON(ctx, fmt.Sprintf("%s/repos/%s", p.BaseURL, repo), &info); err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s: %w", repo, err)
	}
	branch := info.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	var tree treeResponse
	treeURL := fmt.Sprintf("%s/repos/%s/git/trees/%s?recursive=1", p.BaseURL, repo, branch)
	if err := p.getJSON(ctx, treeURL, &tree); err != nil {
		return nil, fmt.Errorf("failed to fetch tree for %s: %w", repo, err)
	}
	if tree.Truncated {
		logger.WarnContext(ctx, "repository tree truncated by GitHub, indexing partial listing", "repo", repo)
	}

	var paths []string
	for _, entry := range tree.Tree {
		if entry.Type != "blob" {
			continue
		}
		if entry.Size > maxFileSize {
			continue
		}
		if !eligiblePath(entry.Path) {
			continue
		}
		paths = append(paths, entry.Path)
	}

	files := make([]File, 0, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchWorkers)
	for _, relPath := range paths {
		g.Go(func() error {
			content, err := p.fetchRaw(gctx, repo, branch, relPath)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", relPath, err)
			}
			if !textContent(content) {
				return nil
			}
			mu.Lock()
			files = append(files, File{Path: relPath, Content: string(content)})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "fetched repository contents", "repo", repo, "branch", branch, "files", len(files))
	return files, nil
}

// fetchRaw downloads a single file through the contents API with the raw media type.
func (p *GitHubProvider) fetchRaw(ctx context.Context, repo, ref, relPath string) ([]byte, error) {
	url := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s", p.BaseURL, repo, relPath, ref)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.raw+json")
	if p.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.Token))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
}

// getJSON performs an authenticated GET and decodes the JSON response into out.
func (p *GitHubProvider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if p.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.Token))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
