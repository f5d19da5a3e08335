package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is the atomic indexed unit: a bounded span of document text
// together with its embedding. Chunks are immutable once stored and are only
// removed by a full index clear.
type DocumentChunk struct {
	Id             uuid.UUID
	Source         string // originating document filename
	ChunkIndex     int    // 0-based position within the source document
	Content        string
	EmbeddingValue []float32
	CreatedAt      time.Time
}
