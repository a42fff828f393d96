package unitofwork

import (
	"context"

	"retail-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomerRepository() contract.CustomerRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatTurnRepository() contract.ChatTurnRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
	KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository
}
