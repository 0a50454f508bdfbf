package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"repoqa/internal/contextutil"
	"repoqa/internal/llm"
	"repoqa/internal/provider"
	"repoqa/internal/storage"
	"repoqa/internal/vectorstore"
)

// Pipeline orchestrates indexing a repository: fetch content, chunk it, embed
// the chunks, and write them to the vector store. Runs for the same repository
// are serialized; runs for different repositories proceed independently.
type Pipeline struct {
	provider     provider.ContentProvider
	batcher      *llm.Batcher
	vectorStore  vectorstore.VectorStore
	repoStore    storage.RepoStore
	collection   string
	maxChunkSize int
	locks        *repoLocks
}

// NewPipeline creates a new indexing pipeline.
// maxChunkSize <= 0 falls back to DefaultMaxChunkSize.
func NewPipeline(
	contentProvider provider.ContentProvider,
	batcher *llm.Batcher,
	vectorStore vectorstore.VectorStore,
	repoStore storage.RepoStore,
	collection string,
	maxChunkSize int,
) *Pipeline {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}
	return &Pipeline{
		provider:     contentProvider,
		batcher:      batcher,
		vectorStore:  vectorStore,
		repoStore:    repoStore,
		collection:   collection,
		maxChunkSize: maxChunkSize,
		locks:        newRepoLocks(),
	}
}

// Index indexes a repository. Unless force is set, a repository that already
// has stored chunks short-circuits with AlreadyIndexed. A forced run deletes
// the repository's existing chunks before writing, so the stored set is fully
// replaced rather than appended to. The run is all-or-nothing: any collaborator
// failure aborts it without rollback.
func (p *Pipeline) Index(ctx context.Context, repo string, force bool) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	unlock := p.locks.Lock(repo)
	defer unlock()

	logger.InfoContext(ctx, "indexing started", "repo", repo, "force", force)

	if !force {
		exists, err := p.vectorStore.Exists(ctx, p.collection, repo)
		if err != nil {
			return nil, &IndexingError{Repo: repo, Stage: StageChecking, Err: err}
		}
		if exists {
			logger.InfoContext(ctx, "repository already indexed, skipping", "repo", repo)
			return &Result{AlreadyIndexed: true}, nil
		}
	}

	files, err := p.provider.FetchContent(ctx, repo)
	if err != nil {
		return nil, &IndexingError{Repo: repo, Stage: StageFetching, Err: err}
	}
	if len(files) == 0 {
		return nil, &IndexingError{Repo: repo, Stage: StageFetching, Err: ErrNoContent}
	}

	chunks := p.chunkFiles(files)
	if len(chunks) == 0 {
		return nil, &IndexingError{Repo: repo, Stage: StageChunking, Err: ErrNoContent}
	}

	stats := computeChunkStats(chunks)
	logger.InfoContext(ctx, "chunking completed",
		"repo", repo,
		"files", len(files),
		"chunks", stats.Count,
		"min_size", stats.Min,
		"max_size", stats.Max,
		"mean_size", fmt.Sprintf("%.1f", stats.Mean),
		"p95_size", stats.P95,
	)

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := p.batcher.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, &IndexingError{Repo: repo, Stage: StageEmbedding, Err: err}
	}
	if len(vectors) != len(chunks) {
		err := fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(vectors))
		return nil, &IndexingError{Repo: repo, Stage: StageEmbedding, Err: err}
	}

	// A forced run replaces the whole repository index, so stale chunks from
	// removed or shrunken files cannot survive.
	if force {
		if err := p.vectorStore.DeleteByRepo(ctx, p.collection, repo); err != nil {
			return nil, &IndexingError{Repo: repo, Stage: StageStoring, Err: err}
		}
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		id := ChunkID{Repo: repo, Path: chunk.Path, Index: chunk.Index}
		points[i] = vectorstore.Point{
			ID:  id.PointID(),
			Vec: vectors[i],
			Meta: map[string]any{
				vectorstore.MetaRepo:       repo,
				vectorstore.MetaPath:       chunk.Path,
				vectorstore.MetaChunkIndex: chunk.Index,
				vectorstore.MetaContent:    chunk.Text,
			},
		}
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return nil, &IndexingError{Repo: repo, Stage: StageStoring, Err: err}
	}

	// Catalog bookkeeping is advisory; a failure here does not undo the run.
	record := &storage.RepoRecord{
		ID:        uuid.New().String(),
		Repo:      repo,
		Files:     len(files),
		Chunks:    len(chunks),
		IndexedAt: time.Now().UTC(),
	}
	if err := p.repoStore.Upsert(ctx, record); err != nil {
		logger.WarnContext(ctx, "failed to update repository catalog", "repo", repo, "error", err)
	}

	logger.InfoContext(ctx, "indexing completed",
		"repo", repo,
		"files", len(files),
		"chunks", len(chunks),
		"embeddings", len(vectors),
	)

	return &Result{
		FilesProcessed:   len(files),
		ChunksCreated:    len(chunks),
		EmbeddingsStored: len(vectors),
	}, nil
}

// Remove deletes every stored chunk for a repository along with its catalog entry.
func (p *Pipeline) Remove(ctx context.Context, repo string) error {
	logger := contextutil.LoggerFromContext(ctx)

	unlock := p.locks.Lock(repo)
	defer unlock()

	if err := p.vectorStore.DeleteByRepo(ctx, p.collection, repo); err != nil {
		return &IndexingError{Repo: repo, Stage: StageStoring, Err: err}
	}
	if err := p.repoStore.Delete(ctx, repo); err != nil {
		logger.WarnContext(ctx, "failed to delete repository catalog entry", "repo", repo, "error", err)
	}

	logger.InfoContext(ctx, "repository removed from index", "repo", repo)
	return nil
}

// chunkFiles runs the chunker over every file, tagging chunks with their origin.
func (p *Pipeline) chunkFiles(files []provider.File) []Chunk {
	var chunks []Chunk
	for _, file := range files {
		for i, text := range Split(file.Content, p.maxChunkSize) {
			chunks = append(chunks, Chunk{
				Path:  file.Path,
				Index: i,
				Text:  text,
			})
		}
	}
	return chunks
}
