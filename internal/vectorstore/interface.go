package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks repoqa/internal/vectorstore VectorStore

import "context"

// Payload keys stored with every point so query results can be returned without
// a secondary lookup.
const (
	MetaRepo       = "repo"
	MetaPath       = "path"
	MetaChunkIndex = "chunk_index"
	MetaContent    = "content"
)

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a single similarity search hit.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines repository-scoped vector storage operations.
// All state is partitioned by the repository identifier carried in point metadata.
type VectorStore interface {
	// Upsert inserts or updates points in the collection. Re-upserting a point
	// with the same ID overwrites it in place.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to k points for the given repository, ordered by
	// descending similarity score.
	Search(ctx context.Context, collection, repo string, query []float32, k int) ([]SearchResult, error)

	// DeleteByRepo removes every point belonging to the given repository.
	DeleteByRepo(ctx context.Context, collection, repo string) error

	// Exists reports whether at least one point is stored for the repository.
	Exists(ctx context.Context, collection, repo string) (bool, error)

	// CollectionExists checks if a collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
