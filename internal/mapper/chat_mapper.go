package mapper

import (
	"encoding/json"
	"time"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	fields := make(map[string]string)
	if len(s.CollectedFields) > 0 {
		// Best effort: a malformed snapshot yields an empty map.
		_ = json.Unmarshal(s.CollectedFields, &fields)
	}

	return &entity.ChatSession{
		Id:              s.Id,
		Phase:           s.Phase,
		CollectedFields: fields,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	var fields datatypes.JSON
	if s.CollectedFields != nil {
		raw, err := json.Marshal(s.CollectedFields)
		if err == nil {
			fields = raw
		}
	}

	return &model.ChatSession{
		Id:              s.Id,
		Phase:           s.Phase,
		CollectedFields: fields,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

// Turn Mappers

func (m *ChatMapper) ChatTurnToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}

	return &entity.ChatTurn{
		Id:            t.Id,
		ChatSessionId: t.ChatSessionId,
		Role:          t.Role,
		Content:       t.Content,
		Sequence:      t.Sequence,
		CreatedAt:     t.CreatedAt,
	}
}

func (m *ChatMapper) ChatTurnToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}

	return &model.ChatTurn{
		Id:            t.Id,
		ChatSessionId: t.ChatSessionId,
		Role:          t.Role,
		Content:       t.Content,
		Sequence:      t.Sequence,
		CreatedAt:     t.CreatedAt,
	}
}
