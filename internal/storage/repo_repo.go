package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_repo_store.go -package=mocks repoqa/internal/storage RepoStore

import (
	"context"
	"database/sql"
	"fmt"
)

// RepoStore defines the interface for the indexed-repository catalog.
type RepoStore interface {
	// Upsert records (or refreshes) the catalog entry for a repository.
	// The record.ID must be set (UUID) before calling this method.
	Upsert(ctx context.Context, record *RepoRecord) error
	// GetByRepo returns the catalog entry for a repository.
	// Returns ErrNotFound if the repository has never been indexed.
	GetByRepo(ctx context.Context, repo string) (*RepoRecord, error)
	// ListAll returns every catalog entry ordered by repository name.
	ListAll(ctx context.Context) ([]RepoRecord, error)
	// Delete removes the catalog entry for a repository. Deleting a missing
	// entry is not an error.
	Delete(ctx context.Context, repo string) error
}

// RepoRepo provides catalog operations backed by SQLite.
// It implements the RepoStore interface.
type RepoRepo struct {
	db *sql.DB
}

// NewRepoRepo creates a new RepoRepo.
func NewRepoRepo(db *sql.DB) *RepoRepo {
	return &RepoRepo{db: db}
}

// Upsert records (or refreshes) the catalog entry for a repository.
func (r *RepoRepo) Upsert(ctx context.Context, record *RepoRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO repositories (id, repo, files, chunks, indexed_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(repo) DO UPDATE SET files = excluded.files, chunks = excluded.chunks, indexed_at = excluded.indexed_at`,
		record.ID, record.Repo, record.Files, record.Chunks, record.IndexedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert repository record: %w", err)
	}
	return nil
}

// GetByRepo returns the catalog entry for a repository.
func (r *RepoRepo) GetByRepo(ctx context.Context, repo string) (*RepoRecord, error) {
	var record RepoRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, repo, files, chunks, indexed_at FROM repositories WHERE repo = ?",
		repo,
	).Scan(&record.ID, &record.Repo, &record.Files, &record.Chunks, &record.IndexedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query repository record: %w", err)
	}

	return &record, nil
}

// ListAll returns every catalog entry ordered by repository name.
func (r *RepoRepo) ListAll(ctx context.Context) ([]RepoRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, repo, files, chunks, indexed_at FROM repositories ORDER BY repo",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query repository records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []RepoRecord
	for rows.Next() {
		var record RepoRecord
		if err := rows.Scan(&record.ID, &record.Repo, &record.Files, &record.Chunks, &record.IndexedAt); err != nil {
			return nil, fmt.Errorf("failed to scan repository record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Delete removes the catalog entry for a repository.
func (r *RepoRepo) Delete(ctx context.Context, repo string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM repositories WHERE repo = ?", repo)
	if err != nil {
		return fmt.Errorf("failed to delete repository record: %w", err)
	}
	return nil
}
