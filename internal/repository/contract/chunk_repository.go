package contract

import (
	"context"
	"errors"

	"github.com/mbernahr/simple-eri-test-server/internal/entity"
)

// ErrStoreUnavailable signals that the backing persistence layer could not be
// reached or written. Callers surface it as an opaque server error.
var ErrStoreUnavailable = errors.New("vector index store unavailable")

// ScoredChunk pairs a stored chunk with its cosine similarity to a query vector.
type ScoredChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

// ChunkRepository is the vector index abstraction: a persistent store of
// (embedding, text, metadata) records supporting batch insert, k-nearest
// neighbor search and a full clear.
type ChunkRepository interface {
	// CreateBulk commits a batch of chunks atomically: a concurrent query
	// never observes a partially written batch.
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error

	// SearchSimilarWithScore returns up to limit chunks ordered by descending
	// cosine similarity to the given embedding. Ties are broken by insertion
	// order, earliest first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredChunk, error)

	// Clear removes every stored chunk and reports how many were removed.
	// Clearing an empty index returns 0 and is not an error.
	Clear(ctx context.Context) (int64, error)

	Count(ctx context.Context) (int64, error)
}
