package implementation

import (
	"context"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/mapper"
	"retail-assistant-be/internal/model"
	"retail-assistant-be/internal/repository/contract"
	"retail-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatTurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatTurnRepository(db *gorm.DB) contract.ChatTurnRepository {
	return &ChatTurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatTurnRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatTurnRepositoryImpl) Create(ctx context.Context, turn *entity.ChatTurn) error {
	m := r.mapper.ChatTurnToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.ChatTurnToEntity(m)
	return nil
}

func (r *ChatTurnRepositoryImpl) CreateBulk(ctx context.Context, turns []*entity.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	models := make([]*model.ChatTurn, len(turns))
	for i, t := range turns {
		models[i] = r.mapper.ChatTurnToModel(t)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*turns[i] = *r.mapper.ChatTurnToEntity(m)
	}
	return nil
}

func (r *ChatTurnRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error) {
	var models []*model.ChatTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	turns := make([]*entity.ChatTurn, len(models))
	for i, m := range models {
		turns[i] = r.mapper.ChatTurnToEntity(m)
	}
	return turns, nil
}

func (r *ChatTurnRepositoryImpl) CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ChatTurn{}).
		Where("chat_session_id = ?", sessionId).
		Count(&count).Error
	return count, err
}
