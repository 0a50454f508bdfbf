package indexer

import (
	"errors"
	"fmt"
)

// ErrNoContent is returned when the content provider yields nothing indexable.
var ErrNoContent = errors.New("repository has no indexable content")

// Indexing stages, used for error context and logging.
const (
	StageChecking  = "checking"
	StageFetching  = "fetching"
	StageChunking  = "chunking"
	StageEmbedding = "embedding"
	StageStoring   = "storing"
)

// IndexingError wraps a failure of an indexing run with the repository and the
// stage it failed in.
type IndexingError struct {
	Repo  string
	Stage string
	Err   error
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("indexing %s failed during %s: %v", e.Repo, e.Stage, e.Err)
}

func (e *IndexingError) Unwrap() error {
	return e.Err
}
