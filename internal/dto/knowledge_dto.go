package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestChunkRequest struct {
	Source   string                 `json:"source" validate:"required"`
	Section  string                 `json:"section"`
	Text     string                 `json:"text" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type IngestChunksRequest struct {
	Chunks []IngestChunkRequest `json:"chunks" validate:"required,min=1,dive"`
}

type IngestChunksResponse struct {
	Accepted int         `json:"accepted"`
	ChunkIds []uuid.UUID `json:"chunk_ids"`
}

type KnowledgeChunkDTO struct {
	Id        uuid.UUID              `json:"id"`
	Source    string                 `json:"source"`
	Section   string                 `json:"section,omitempty"`
	Text      string                 `json:"text"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type SearchKnowledgeRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k" validate:"omitempty,min=1,max=20"`
}

type ScoredChunkDTO struct {
	Chunk      KnowledgeChunkDTO `json:"chunk"`
	Similarity float64           `json:"similarity"`
}

type SearchKnowledgeResponse struct {
	Results []ScoredChunkDTO `json:"results"`
}

// PublishEmbedChunkMessage is the payload carried on the embedding
// topic between the ingest path and the consumer worker.
type PublishEmbedChunkMessage struct {
	ChunkId uuid.UUID `json:"chunk_id"`
}
