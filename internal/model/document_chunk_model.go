package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Source         string          `gorm:"type:text;not null;index"`
	ChunkIndex     int             `gorm:"default:0"` // 0-based index for ordering
	Content        string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text / text-embedding-004 use 768 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

// TableName pins the fixed collection name the index is keyed by.
func (DocumentChunk) TableName() string {
	return "document_chunks"
}
