package service

import (
	"context"
	"errors"

	"retail-assistant-be/internal/dto"
	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/pkg/logger"
	"retail-assistant-be/internal/repository/memory"
	"retail-assistant-be/internal/repository/unitofwork"
	"retail-assistant-be/pkg/dialogue"
	"retail-assistant-be/pkg/rag/pipeline"
	"retail-assistant-be/pkg/store"

	"github.com/google/uuid"
)

const (
	greetingMessage = "¡Bienvenido! Soy tu asistente virtual. ¿En qué puedo ayudarte hoy?"

	// Sent when the customer directory is unreachable mid onboarding.
	// The phase does not move, so the same input can simply be retried.
	directoryRetryMessage = "Lo siento, tuvimos un problema técnico al procesar tu solicitud. Por favor, intenta de nuevo."
)

type IAssistantService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendMessage(ctx context.Context, sessionId string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error)
	GetCustomer(ctx context.Context, identificacion string) (*dto.CustomerDTO, error)
}

type assistantService struct {
	registry   *memory.SessionRegistry
	machine    *dialogue.Machine
	pipeline   *pipeline.AnswerPipeline
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAssistantService(
	registry *memory.SessionRegistry,
	machine *dialogue.Machine,
	answerPipeline *pipeline.AnswerPipeline,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		registry:   registry,
		machine:    machine,
		pipeline:   answerPipeline,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *assistantService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := uuid.New()
	session := s.registry.GetOrCreate(id.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record := &entity.ChatSession{
		Id:              id,
		Phase:           session.Phase,
		CollectedFields: map[string]string{},
	}
	if err := uow.ChatSessionRepository().Create(ctx, record); err != nil {
		// The audit trail is secondary to the live conversation.
		s.logger.Warn("AssistantService", "Failed to persist new session", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	return &dto.CreateSessionResponse{
		SessionId: session.ID,
		Phase:     session.Phase,
		Greeting:  greetingMessage,
	}, nil
}

// SendMessage processes one user message. Messages for the same session
// are handled strictly one at a time; concurrent requests queue on the
// session lock.
func (s *assistantService) SendMessage(ctx context.Context, sessionId string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session, found := s.registry.Get(sessionId)
	if !found {
		return nil, entity.ErrSessionNotFound
	}

	session.Lock()
	defer session.Unlock()

	turnsBefore := session.TurnCount()

	var reply string
	if session.Phase == store.PhaseQA {
		answer, err := s.pipeline.Answer(ctx, session, req.Message)
		switch {
		case err == nil:
			reply = answer
		case errors.Is(err, entity.ErrGenerationFailure):
			// Apologize without recording the turn, so a retry replays
			// the question against a clean transcript.
			reply = pipeline.ApologyMessage
		default:
			return nil, err
		}
	} else {
		session.AppendTurn(store.RoleUser, req.Message)

		stepReply, err := s.machine.Step(ctx, session, req.Message)
		if err != nil {
			s.logger.Error("AssistantService", "Onboarding step failed", map[string]interface{}{
				"session_id": session.ID,
				"phase":      session.Phase,
				"error":      err.Error(),
			})
			stepReply = directoryRetryMessage
		}

		session.AppendTurn(store.RoleAssistant, stepReply)
		reply = stepReply
	}

	s.persistAudit(ctx, session, turnsBefore)

	return &dto.SendMessageResponse{
		SessionId: session.ID,
		Phase:     session.Phase,
		Reply:     reply,
	}, nil
}

func (s *assistantService) GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error) {
	session, found := s.registry.Get(sessionId)
	if !found {
		return nil, entity.ErrSessionNotFound
	}

	turns := session.Turns()
	turnDTOs := make([]dto.TurnDTO, len(turns))
	for i, turn := range turns {
		turnDTOs[i] = dto.TurnDTO{
			Role:     turn.Role,
			Content:  turn.Content,
			Sequence: turn.Sequence,
		}
	}

	return &dto.GetChatHistoryResponse{
		SessionId: session.ID,
		Phase:     session.Phase,
		Turns:     turnDTOs,
	}, nil
}

func (s *assistantService) GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error) {
	sessions := s.registry.List()

	res := make([]*dto.GetAllSessionsResponse, len(sessions))
	for i, session := range sessions {
		res[i] = &dto.GetAllSessionsResponse{
			SessionId: session.ID,
			Phase:     session.Phase,
			TurnCount: session.TurnCount(),
		}
	}
	return res, nil
}

// GetCustomer resolves a registered customer for the ops dashboard.
func (s *assistantService) GetCustomer(ctx context.Context, identificacion string) (*dto.CustomerDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	customer, err := uow.CustomerRepository().FindByIdentificacion(ctx, identificacion)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, entity.ErrCustomerNotFound
	}

	return &dto.CustomerDTO{
		Identificacion: customer.Identificacion,
		Nombre:         customer.Nombre,
		Telefono:       customer.Telefono,
		Email:          customer.Email,
		CreatedAt:      customer.CreatedAt,
		UpdatedAt:      customer.UpdatedAt,
	}, nil
}

// persistAudit mirrors the session state and any turns appended during
// this call into the database. Best effort; the in-memory transcript
// stays canonical.
func (s *assistantService) persistAudit(ctx context.Context, session *store.Session, turnsBefore int) {
	sessionId, err := uuid.Parse(session.ID)
	if err != nil {
		return
	}

	fields := make(map[string]string, len(session.Fields))
	for k, v := range session.Fields {
		fields[k] = v
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	record := &entity.ChatSession{
		Id:              sessionId,
		Phase:           session.Phase,
		CollectedFields: fields,
	}
	if err := uow.ChatSessionRepository().Update(ctx, record); err != nil {
		s.logger.Warn("AssistantService", "Failed to persist session state", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	turns := session.Turns()
	if turnsBefore >= len(turns) {
		return
	}

	newTurns := make([]*entity.ChatTurn, 0, len(turns)-turnsBefore)
	for _, turn := range turns[turnsBefore:] {
		newTurns = append(newTurns, &entity.ChatTurn{
			Id:            uuid.New(),
			ChatSessionId: sessionId,
			Role:          turn.Role,
			Content:       turn.Content,
			Sequence:      turn.Sequence,
		})
	}
	if err := uow.ChatTurnRepository().CreateBulk(ctx, newTurns); err != nil {
		s.logger.Warn("AssistantService", "Failed to persist turns", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}
}
