package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBatchSize is the number of texts embedded concurrently per batch.
	DefaultBatchSize = 10
	// DefaultBatchDelay is the pause between batches to respect upstream rate limits.
	DefaultBatchDelay = 300 * time.Millisecond
)

// Batcher embeds sequences of texts in fixed-size batches. Calls within a batch
// run concurrently; a pacing delay separates batches. Any single failure aborts
// the whole call and partial results are discarded.
type Batcher struct {
	embedder  Embedder
	batchSize int
	delay     time.Duration
}

// NewBatcher creates a Batcher around the given embedder.
// batchSize <= 0 and delay < 0 fall back to the defaults.
func NewBatcher(embedder Embedder, batchSize int, delay time.Duration) *Batcher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if delay < 0 {
		delay = DefaultBatchDelay
	}
	return &Batcher{
		embedder:  embedder,
		batchSize: batchSize,
		delay:     delay,
	}
}

// EmbedTexts embeds every text and returns the vectors in input order.
func (b *Batcher) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))

	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				vec, err := b.embedder.Embed(gctx, texts[i])
				if err != nil {
					return fmt.Errorf("failed to embed text %d: %w", i, err)
				}
				vectors[i] = vec
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// No delay after the final batch.
		if end < len(texts) && b.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(b.delay):
			}
		}
	}

	return vectors, nil
}
