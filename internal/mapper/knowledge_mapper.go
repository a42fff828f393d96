package mapper

import (
	"encoding/json"
	"time"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(c *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]any
	if len(c.Metadata) > 0 {
		_ = json.Unmarshal(c.Metadata, &metadata)
	}

	return &entity.KnowledgeChunk{
		Id:        c.Id,
		Source:    c.Source,
		Section:   c.Section,
		Text:      c.Text,
		Metadata:  metadata,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(c *entity.KnowledgeChunk) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var metadata datatypes.JSON
	if c.Metadata != nil {
		raw, err := json.Marshal(c.Metadata)
		if err == nil {
			metadata = raw
		}
	}

	return &model.KnowledgeChunk{
		Id:        c.Id,
		Source:    c.Source,
		Section:   c.Section,
		Text:      c.Text,
		Metadata:  metadata,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KnowledgeMapper) ToEntities(models []*model.KnowledgeChunk) []*entity.KnowledgeChunk {
	entities := make([]*entity.KnowledgeChunk, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
