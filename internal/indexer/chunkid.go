package indexer

import (
	"fmt"

	"github.com/google/uuid"
)

// chunkNamespace is the UUIDv5 namespace for chunk point ids.
var chunkNamespace = uuid.MustParse("9c5f1a9e-2d4b-4c33-8a71-5b1f0d6e4f20")

// ChunkID is the composite identity of a stored chunk. Re-indexing the same
// repo/path/index yields the same point id, so upserts overwrite in place and
// repeated runs never accumulate duplicates.
type ChunkID struct {
	Repo  string
	Path  string
	Index int
}

// String is the canonical serialization of the composite key.
func (id ChunkID) String() string {
	return fmt.Sprintf("%s::%s::%d", id.Repo, id.Path, id.Index)
}

// PointID derives the deterministic UUID used as the vector store point id.
// Qdrant point ids must be UUIDs, so the canonical key is hashed into one.
func (id ChunkID) PointID() string {
	return uuid.NewSHA1(chunkNamespace, []byte(id.String())).String()
}
