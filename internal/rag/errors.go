package rag

import (
	"errors"
	"fmt"
)

// ErrNotIndexed is returned when a question targets a repository with zero
// stored chunks. The caller should index the repository first.
var ErrNotIndexed = errors.New("repository is not indexed")

// Query stages, used for error context and HTTP status mapping.
const (
	StageEmbed    = "embed"
	StageSearch   = "search"
	StageGenerate = "generate"
)

// QueryError wraps a failure of a question-answering run with the repository
// and the stage it failed in.
type QueryError struct {
	Repo  string
	Stage string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query against %s failed during %s: %v", e.Repo, e.Stage, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
