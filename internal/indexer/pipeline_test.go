package indexer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"repoqa/internal/llm"
	llmmocks "repoqa/internal/llm/mocks"
	"repoqa/internal/provider"
	providermocks "repoqa/internal/provider/mocks"
	"repoqa/internal/storage"
	storagemocks "repoqa/internal/storage/mocks"
	"repoqa/internal/vectorstore"
	vsmocks "repoqa/internal/vectorstore/mocks"
)

const testCollection = "repo_chunks"

type pipelineMocks struct {
	provider    *providermocks.MockContentProvider
	embedder    *llmmocks.MockEmbedder
	vectorStore *vsmocks.MockVectorStore
	repoStore   *storagemocks.MockRepoStore
}

func newTestPipeline(t *testing.T) (*Pipeline, pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := pipelineMocks{
		provider:    providermocks.NewMockContentProvider(ctrl),
		embedder:    llmmocks.NewMockEmbedder(ctrl),
		vectorStore: vsmocks.NewMockVectorStore(ctrl),
		repoStore:   storagemocks.NewMockRepoStore(ctrl),
	}

	batcher := llm.NewBatcher(m.embedder, 10, 0)
	p := NewPipeline(m.provider, batcher, m.vectorStore, m.repoStore, testCollection, 100)
	return p, m
}

func TestPipelineIndexAlreadyIndexed(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	m.vectorStore.EXPECT().Exists(gomock.Any(), testCollection, "octocat/hello").Return(true, nil)

	result, err := p.Index(ctx, "octocat/hello", false)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if !result.AlreadyIndexed {
		t.Error("expected AlreadyIndexed to be set")
	}
	if result.ChunksCreated != 0 || result.EmbeddingsStored != 0 {
		t.Errorf("short-circuit result should carry no counts, got %+v", result)
	}
}

func TestPipelineIndexNoContent(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	m.vectorStore.EXPECT().Exists(gomock.Any(), testCollection, "octocat/empty").Return(false, nil)
	m.provider.EXPECT().FetchContent(gomock.Any(), "octocat/empty").Return(nil, nil)

	_, err := p.Index(ctx, "octocat/empty", false)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("Index() error = %v, want ErrNoContent", err)
	}

	var ie *IndexingError
	if !errors.As(err, &ie) {
		t.Fatalf("error is not an *IndexingError: %v", err)
	}
	if ie.Stage != StageFetching {
		t.Errorf("Stage = %q, want %q", ie.Stage, StageFetching)
	}
	if ie.Repo != "octocat/empty" {
		t.Errorf("Repo = %q, want %q", ie.Repo, "octocat/empty")
	}
}

func TestPipelineIndexSuccess(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	files := []provider.File{
		{Path: "main.go", Content: strings.Repeat("a", 90) + "\n" + strings.Repeat("b", 90)},
		{Path: "README.md", Content: "hello"},
	}

	m.vectorStore.EXPECT().Exists(gomock.Any(), testCollection, "octocat/hello").Return(false, nil)
	m.provider.EXPECT().FetchContent(gomock.Any(), "octocat/hello").Return(files, nil)
	m.embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{0.1, 0.2}, nil).Times(3)

	var stored []vectorstore.Point
	m.vectorStore.EXPECT().Upsert(gomock.Any(), testCollection, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
			stored = points
			return nil
		})
	m.repoStore.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *storage.RepoRecord) error {
			if record.Repo != "octocat/hello" {
				t.Errorf("catalog Repo = %q", record.Repo)
			}
			if record.Files != 2 || record.Chunks != 3 {
				t.Errorf("catalog Files/Chunks = %d/%d, want 2/3", record.Files, record.Chunks)
			}
			return nil
		})

	result, err := p.Index(ctx, "octocat/hello", false)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if result.FilesProcessed != 2 || result.ChunksCreated != 3 || result.EmbeddingsStored != 3 {
		t.Errorf("result = %+v, want 2 files, 3 chunks, 3 embeddings", result)
	}

	if len(stored) != 3 {
		t.Fatalf("stored %d points, want 3", len(stored))
	}
	first := stored[0]
	wantID := ChunkID{Repo: "octocat/hello", Path: "main.go", Index: 0}.PointID()
	if first.ID != wantID {
		t.Errorf("point ID = %q, want %q", first.ID, wantID)
	}
	if first.Meta[vectorstore.MetaRepo] != "octocat/hello" {
		t.Errorf("point repo metadata = %v", first.Meta[vectorstore.MetaRepo])
	}
	if first.Meta[vectorstore.MetaContent] != strings.Repeat("a", 90) {
		t.Errorf("point content metadata = %v", first.Meta[vectorstore.MetaContent])
	}
}

func TestPipelineIndexForceReplaces(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	files := []provider.File{{Path: "main.go", Content: "package main"}}

	// A forced run never checks for prior state and deletes before writing.
	m.provider.EXPECT().FetchContent(gomock.Any(), "octocat/hello").Return(files, nil)
	m.embedder.EXPECT().Embed(gomock.Any(), "package main").Return([]float32{1}, nil)

	gomock.InOrder(
		m.vectorStore.EXPECT().DeleteByRepo(gomock.Any(), testCollection, "octocat/hello").Return(nil),
		m.vectorStore.EXPECT().Upsert(gomock.Any(), testCollection, gomock.Any()).Return(nil),
	)
	m.repoStore.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	result, err := p.Index(ctx, "octocat/hello", true)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if result.AlreadyIndexed {
		t.Error("forced run must not short-circuit")
	}
}

func TestPipelineIndexEmbeddingFailure(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	files := []provider.File{{Path: "main.go", Content: "package main"}}
	embedErr := errors.New("rate limited")

	m.vectorStore.EXPECT().Exists(gomock.Any(), testCollection, "octocat/hello").Return(false, nil)
	m.provider.EXPECT().FetchContent(gomock.Any(), "octocat/hello").Return(files, nil)
	m.embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, embedErr)

	_, err := p.Index(ctx, "octocat/hello", false)
	if !errors.Is(err, embedErr) {
		t.Fatalf("Index() error = %v, want wrapped %v", err, embedErr)
	}

	var ie *IndexingError
	if !errors.As(err, &ie) || ie.Stage != StageEmbedding {
		t.Errorf("expected embedding-stage IndexingError, got %v", err)
	}
}

func TestPipelineIndexStoreFailure(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	files := []provider.File{{Path: "main.go", Content: "package main"}}
	storeErr := errors.New("connection refused")

	m.vectorStore.EXPECT().Exists(gomock.Any(), testCollection, "octocat/hello").Return(false, nil)
	m.provider.EXPECT().FetchContent(gomock.Any(), "octocat/hello").Return(files, nil)
	m.embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1}, nil)
	m.vectorStore.EXPECT().Upsert(gomock.Any(), testCollection, gomock.Any()).Return(storeErr)

	_, err := p.Index(ctx, "octocat/hello", false)

	var ie *IndexingError
	if !errors.As(err, &ie) || ie.Stage != StageStoring {
		t.Errorf("expected storing-stage IndexingError, got %v", err)
	}
}

func TestPipelineRemove(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	m.vectorStore.EXPECT().DeleteByRepo(gomock.Any(), testCollection, "octocat/hello").Return(nil)
	m.repoStore.EXPECT().Delete(gomock.Any(), "octocat/hello").Return(nil)

	if err := p.Remove(ctx, "octocat/hello"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
}
