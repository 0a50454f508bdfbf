package indexer

// Chunk is a slice of one file's text, tagged with its origin.
type Chunk struct {
	Path  string // relative file path within the repository
	Index int    // sequence within the file (starts at 0)
	Text  string // chunk text content
}

// Result reports the outcome of an indexing run.
type Result struct {
	AlreadyIndexed   bool
	FilesProcessed   int
	ChunksCreated    int
	EmbeddingsStored int
}
