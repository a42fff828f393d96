package retrieval

import (
	"context"
	"fmt"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/repository/unitofwork"
	"retail-assistant-be/pkg/embedding"
)

// DefaultTopK is the number of chunks fed into the prompt context.
const DefaultTopK = 5

// Retriever embeds a question and pulls the closest knowledge chunks
// from the vector store, best match first.
type Retriever struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
	topK       int
}

func NewRetriever(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider) *Retriever {
	return &Retriever{
		uowFactory: uowFactory,
		embedder:   embedder,
		topK:       DefaultTopK,
	}
}

func NewRetrieverWithTopK(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider, topK int) *Retriever {
	r := NewRetriever(uowFactory, embedder)
	if topK > 0 {
		r.topK = topK
	}
	return r
}

func (r *Retriever) Retrieve(ctx context.Context, question string) ([]*entity.ScoredKnowledgeChunk, error) {
	embedded, err := r.embedder.Generate(question, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("%w: embed question: %v", entity.ErrRetrievalUnavailable, err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.KnowledgeEmbeddingRepository().SearchSimilar(ctx, embedded.Embedding.Values, r.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search: %v", entity.ErrRetrievalUnavailable, err)
	}

	return chunks, nil
}
