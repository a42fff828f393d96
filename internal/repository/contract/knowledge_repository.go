package contract

import (
	"context"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeChunkRepository interface {
	Create(ctx context.Context, chunk *entity.KnowledgeChunk) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// KnowledgeEmbeddingRepository stores one vector per chunk and answers
// nearest-neighbor queries over them.
type KnowledgeEmbeddingRepository interface {
	Upsert(ctx context.Context, chunkId uuid.UUID, embedding []float32) error
	DeleteByChunkId(ctx context.Context, chunkId uuid.UUID) error
	// SearchSimilar returns up to limit chunks ranked by cosine
	// similarity to the query embedding, best first.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.ScoredKnowledgeChunk, error)
}
