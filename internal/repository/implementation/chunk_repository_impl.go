package implementation

import (
	"context"
	"fmt"

	"github.com/mbernahr/simple-eri-test-server/internal/entity"
	"github.com/mbernahr/simple-eri-test-server/internal/mapper"
	"github.com/mbernahr/simple-eri-test-server/internal/model"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := r.mapper.ToModels(chunks)

	// Single transaction so the batch becomes visible to queries all at once.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(models).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}

	// Update DB-assigned fields back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query_vector) = cosine_similarity.
	type result struct {
		model.DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		// Secondary ordering keeps equal-similarity results in insertion order.
		Order("similarity DESC, created_at ASC, chunk_index ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.DocumentChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *ChunkRepositoryImpl) Clear(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.DocumentChunk{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.DocumentChunk{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}
	return count, nil
}
