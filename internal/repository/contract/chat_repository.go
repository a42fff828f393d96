package contract

import (
	"context"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
}

type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	CreateBulk(ctx context.Context, turns []*entity.ChatTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
	CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
