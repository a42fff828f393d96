package implementation

import (
	"context"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/mapper"
	"retail-assistant-be/internal/model"
	"retail-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeEmbeddingRepository(db *gorm.DB) contract.KnowledgeEmbeddingRepository {
	return &KnowledgeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeEmbeddingRepositoryImpl) Upsert(ctx context.Context, chunkId uuid.UUID, embedding []float32) error {
	m := &model.KnowledgeEmbedding{
		Id:             uuid.New(),
		ChunkId:        chunkId,
		EmbeddingValue: pgvector.NewVector(embedding),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chunk_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding_value"}),
		}).
		Create(m).Error
}

func (r *KnowledgeEmbeddingRepositoryImpl) DeleteByChunkId(ctx context.Context, chunkId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chunk_id = ?", chunkId).Delete(&model.KnowledgeEmbedding{}).Error
}

// SearchSimilar ranks chunks by pgvector cosine distance. Cosine distance
// is 1 - cosine_similarity, so similarity = 1 - (embedding_value <=> q).
func (r *KnowledgeEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.ScoredKnowledgeChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.KnowledgeChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_embeddings").
		Select("knowledge_chunks.*, 1 - (knowledge_embeddings.embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN knowledge_chunks ON knowledge_chunks.id = knowledge_embeddings.chunk_id").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredKnowledgeChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredKnowledgeChunk{
			Chunk:      r.mapper.ToEntity(&res.KnowledgeChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
