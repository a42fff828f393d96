package pipeline

import (
	"context"
	"fmt"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/pkg/logger"
	"retail-assistant-be/pkg/llm"
	"retail-assistant-be/pkg/rag/history"
	"retail-assistant-be/pkg/rag/prompt"
	"retail-assistant-be/pkg/store"
)

// ApologyMessage is sent to the user when answer generation fails.
const ApologyMessage = "Lo siento, hubo un problema al procesar tu pregunta. Por favor, intenta de nuevo."

// Retriever pulls grounding chunks for a question, best match first.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]*entity.ScoredKnowledgeChunk, error)
}

// AnswerPipeline grounds a customer question in retrieved knowledge and
// the session transcript, then generates the reply.
type AnswerPipeline struct {
	retriever Retriever
	provider  llm.LLMProvider
	loader    *history.Loader
	log       logger.ILogger
}

func NewAnswerPipeline(retriever Retriever, provider llm.LLMProvider, loader *history.Loader, log logger.ILogger) *AnswerPipeline {
	return &AnswerPipeline{
		retriever: retriever,
		provider:  provider,
		loader:    loader,
		log:       log,
	}
}

// Answer runs one QA turn. On success the question and reply are
// appended to the transcript. On generation failure nothing is
// appended, so a retry replays the turn from scratch. Phase and
// collected fields are never touched here.
func (p *AnswerPipeline) Answer(ctx context.Context, session *store.Session, question string) (string, error) {
	// Snapshot history before this turn is appended.
	hist := p.loader.Load(session)

	chunks, err := p.retriever.Retrieve(ctx, question)
	if err != nil {
		// Degraded mode: answer from conversation alone rather than
		// failing the turn.
		p.log.Warn("rag.pipeline", "retrieval unavailable, answering with empty context", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		chunks = nil
	}

	promptText := prompt.NewBuilder(chunks, hist, question).Build()

	answer, err := p.provider.Generate(ctx, promptText, llm.WithTemperature(0))
	if err != nil {
		p.log.Error("rag.pipeline", "generation failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailure, err)
	}

	session.AppendTurn(store.RoleUser, question)
	session.AppendTurn(store.RoleAssistant, answer)

	return answer, nil
}
