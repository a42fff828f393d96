package service

import (
	"context"
	"encoding/json"

	"retail-assistant-be/internal/dto"
	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/pkg/logger"
	"retail-assistant-be/internal/repository/specification"
	"retail-assistant-be/internal/repository/unitofwork"
	"retail-assistant-be/pkg/rag/retrieval"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	IngestChunks(ctx context.Context, req *dto.IngestChunksRequest) (*dto.IngestChunksResponse, error)
	GetChunks(ctx context.Context, source string) ([]*dto.KnowledgeChunkDTO, error)
	Search(ctx context.Context, req *dto.SearchKnowledgeRequest) (*dto.SearchKnowledgeResponse, error)
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	retriever        *retrieval.Retriever
	logger           logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	retriever *retrieval.Retriever,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		retriever:        retriever,
		logger:           log,
	}
}

// IngestChunks stores the chunks and queues each one for embedding.
// Embedding happens asynchronously on the worker topic, so freshly
// ingested chunks become searchable with a short delay.
func (s *knowledgeService) IngestChunks(ctx context.Context, req *dto.IngestChunksRequest) (*dto.IngestChunksResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chunkIds := make([]uuid.UUID, 0, len(req.Chunks))
	for _, chunkReq := range req.Chunks {
		chunk := &entity.KnowledgeChunk{
			Id:       uuid.New(),
			Source:   chunkReq.Source,
			Section:  chunkReq.Section,
			Text:     chunkReq.Text,
			Metadata: chunkReq.Metadata,
		}
		if err := uow.KnowledgeChunkRepository().Create(ctx, chunk); err != nil {
			return nil, err
		}
		chunkIds = append(chunkIds, chunk.Id)

		msgPayload := dto.PublishEmbedChunkMessage{ChunkId: chunk.Id}
		msgJson, err := json.Marshal(msgPayload)
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.logger.Error("KnowledgeService", "Failed to queue chunk for embedding", map[string]interface{}{
				"chunk_id": chunk.Id,
				"error":    err.Error(),
			})
		}
	}

	return &dto.IngestChunksResponse{
		Accepted: len(chunkIds),
		ChunkIds: chunkIds,
	}, nil
}

func (s *knowledgeService) GetChunks(ctx context.Context, source string) ([]*dto.KnowledgeChunkDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if source != "" {
		specs = append(specs, specification.BySource{Source: source})
	}

	chunks, err := uow.KnowledgeChunkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.KnowledgeChunkDTO, len(chunks))
	for i, chunk := range chunks {
		res[i] = toKnowledgeChunkDTO(chunk)
	}
	return res, nil
}

func (s *knowledgeService) Search(ctx context.Context, req *dto.SearchKnowledgeRequest) (*dto.SearchKnowledgeResponse, error) {
	scored, err := s.retriever.Retrieve(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ScoredChunkDTO, 0, len(scored))
	for _, sc := range scored {
		results = append(results, dto.ScoredChunkDTO{
			Chunk:      *toKnowledgeChunkDTO(sc.Chunk),
			Similarity: sc.Similarity,
		})
	}
	if req.TopK > 0 && len(results) > req.TopK {
		results = results[:req.TopK]
	}

	return &dto.SearchKnowledgeResponse{Results: results}, nil
}

func toKnowledgeChunkDTO(chunk *entity.KnowledgeChunk) *dto.KnowledgeChunkDTO {
	return &dto.KnowledgeChunkDTO{
		Id:        chunk.Id,
		Source:    chunk.Source,
		Section:   chunk.Section,
		Text:      chunk.Text,
		Metadata:  chunk.Metadata,
		CreatedAt: chunk.CreatedAt,
	}
}
