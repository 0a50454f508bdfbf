package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"

	"repoqa/internal/contextutil"
)

// LocalProvider reads repository contents from a directory tree on disk.
// A repository "owner/name" is expected at Root/owner/name.
type LocalProvider struct {
	Root string
}

// NewLocalProvider creates a provider rooted at the given directory.
func NewLocalProvider(root string) *LocalProvider {
	return &LocalProvider{Root: root}
}

// FetchContent walks the repository directory and returns every eligible text file.
func (p *LocalProvider) FetchContent(ctx context.Context, repo string) ([]File, error) {
	logger := contextutil.LoggerFromContext(ctx)

	repoRoot := filepath.Join(p.Root, filepath.FromSlash(repo))
	if info, err := os.Stat(repoRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("repository directory not found: %s", repoRoot)
	}

	var files []File
	err := godirwalk.Walk(repoRoot, &godirwalk.Options{
		Unsorted: false,
		Callback: func(path string, de *godirwalk.Dirent) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			relPath, err := filepath.Rel(repoRoot, path)
			if err != nil {
				return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
			}
			relPath = filepath.ToSlash(relPath)

			if de.IsDir() {
				if relPath != "." && skippedDir(de.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !de.IsRegular() {
				return nil
			}
			if !eligiblePath(relPath) {
				return nil
			}

			info, err := os.Stat(path)
			if err != nil {
				logger.WarnContext(ctx, "failed to stat file, skipping", "path", path, "error", err)
				return nil
			}
			if info.Size() > maxFileSize {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				logger.WarnContext(ctx, "failed to read file, skipping", "path", path, "error", err)
				return nil
			}
			if !textContent(data) {
				return nil
			}

			files = append(files, File{Path: relPath, Content: string(data)})
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", repoRoot, err)
	}

	logger.InfoContext(ctx, "scanned repository directory", "repo", repo, "files", len(files))
	return files, nil
}

// ValidRepo reports whether repo is in "owner/name" form with no empty parts.
func ValidRepo(repo string) bool {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 {
		return false
	}
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
