package indexer

import (
	"sort"
	"unicode/utf8"
)

// ChunkStats summarizes chunk sizes (in runes) for one indexing run.
type ChunkStats struct {
	Count int
	Min   int
	Max   int
	Mean  float64
	P95   int
}

// computeChunkStats returns size statistics over the given chunks.
func computeChunkStats(chunks []Chunk) ChunkStats {
	if len(chunks) == 0 {
		return ChunkStats{}
	}

	sizes := make([]int, len(chunks))
	total := 0
	for i, chunk := range chunks {
		sizes[i] = utf8.RuneCountInString(chunk.Text)
		total += sizes[i]
	}
	sort.Ints(sizes)

	// Nearest-rank 95th percentile.
	rank := (95*len(sizes) + 99) / 100
	if rank < 1 {
		rank = 1
	}

	return ChunkStats{
		Count: len(sizes),
		Min:   sizes[0],
		Max:   sizes[len(sizes)-1],
		Mean:  float64(total) / float64(len(sizes)),
		P95:   sizes[rank-1],
	}
}
