// Package provider supplies repository file contents to the indexing pipeline.
package provider

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_provider.go -package=mocks repoqa/internal/provider ContentProvider

import (
	"context"
	"path"
	"strings"
)

// File is a single text file within a repository.
type File struct {
	Path    string // relative path, forward slashes
	Content string
}

// ContentProvider returns the indexable files of a repository.
// repo is in "owner/name" form.
type ContentProvider interface {
	FetchContent(ctx context.Context, repo string) ([]File, error)
}

// maxFileSize is the largest file (in bytes) considered indexable.
const maxFileSize = 200 * 1024

// skipDirs are path components whose subtrees are never indexed.
var skipDirs = map[string]struct{}{
	".git":         {},
	".github":      {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"__pycache__":  {},
}

// skipFiles are exact basenames that carry no answerable content.
var skipFiles = map[string]struct{}{
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"go.sum":            {},
	"Cargo.lock":        {},
	".DS_Store":         {},
}

// skipExts are extensions of binary or generated files.
var skipExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".svg": {},
	".pdf": {}, ".zip": {}, ".gz": {}, ".tar": {}, ".woff": {}, ".woff2": {},
	".ttf": {}, ".eot": {}, ".mp3": {}, ".mp4": {}, ".webm": {}, ".wasm": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {}, ".o": {}, ".a": {},
	".min.js": {}, ".min.css": {},
}

// skippedDir reports whether a directory name excludes its whole subtree.
func skippedDir(name string) bool {
	_, ok := skipDirs[name]
	return ok
}

// eligiblePath reports whether a relative path should be indexed.
func eligiblePath(relPath string) bool {
	relPath = path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	for _, part := range strings.Split(relPath, "/") {
		if _, ok := skipDirs[part]; ok {
			return false
		}
	}
	base := path.Base(relPath)
	if _, ok := skipFiles[base]; ok {
		return false
	}
	lower := strings.ToLower(base)
	for ext := range skipExts {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}

// textContent reports whether data looks like indexable text.
func textContent(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return false
		}
	}
	return true
}
