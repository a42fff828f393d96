package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk is a unit of pre-ingested reference text used to ground
// answers (FAQ entries, schedules, policy paragraphs).
type KnowledgeChunk struct {
	Id        uuid.UUID
	Source    string
	Section   string
	Text      string
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ScoredKnowledgeChunk pairs a chunk with its cosine similarity to a query.
type ScoredKnowledgeChunk struct {
	Chunk      *KnowledgeChunk
	Similarity float64
}
