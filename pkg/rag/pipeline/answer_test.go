package pipeline

import (
	"context"
	"errors"
	"testing"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/pkg/llm/mock"
	"retail-assistant-be/pkg/rag/history"
	"retail-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeRetriever struct {
	chunks []*entity.ScoredKnowledgeChunk
	err    error
	calls  int
}

func (r *fakeRetriever) Retrieve(ctx context.Context, question string) ([]*entity.ScoredKnowledgeChunk, error) {
	r.calls++
	return r.chunks, r.err
}

func newTestPipeline(retriever Retriever, provider *mock.Provider) *AnswerPipeline {
	return NewAnswerPipeline(retriever, provider, history.NewLoader(), nopLogger{})
}

func TestAnswerAppendsQuestionAndReply(t *testing.T) {
	retriever := &fakeRetriever{
		chunks: []*entity.ScoredKnowledgeChunk{
			{Chunk: &entity.KnowledgeChunk{Text: "Abrimos de 8am a 9pm."}},
		},
	}
	provider := mock.NewProvider("Abrimos todos los días de 8am a 9pm.", nil)
	p := newTestPipeline(retriever, provider)

	session := store.NewSession("s1")
	session.Phase = store.PhaseQA

	answer, err := p.Answer(context.Background(), session, "¿horarios?")
	require.NoError(t, err)
	assert.Equal(t, "Abrimos todos los días de 8am a 9pm.", answer)

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, store.RoleUser, turns[0].Role)
	assert.Equal(t, "¿horarios?", turns[0].Content)
	assert.Equal(t, store.RoleAssistant, turns[1].Role)
	assert.Equal(t, answer, turns[1].Content)
}

func TestAnswerDoesNotMutatePhaseOrFields(t *testing.T) {
	provider := mock.NewProvider("ok", nil)
	p := newTestPipeline(&fakeRetriever{}, provider)

	session := store.NewSession("s1")
	session.Phase = store.PhaseQA
	session.Fields[store.FieldIdentificacion] = "12345"

	_, err := p.Answer(context.Background(), session, "q")
	require.NoError(t, err)
	assert.Equal(t, store.PhaseQA, session.Phase)
	assert.Equal(t, "12345", session.Fields[store.FieldIdentificacion])
}

func TestAnswerProceedsWhenRetrievalFails(t *testing.T) {
	retriever := &fakeRetriever{err: entity.ErrRetrievalUnavailable}
	provider := mock.NewProvider("respuesta sin contexto", nil)
	p := newTestPipeline(retriever, provider)

	session := store.NewSession("s1")
	session.Phase = store.PhaseQA

	answer, err := p.Answer(context.Background(), session, "q")
	require.NoError(t, err)
	assert.Equal(t, "respuesta sin contexto", answer)
	assert.Equal(t, 2, session.TurnCount())
}

func TestAnswerProceedsWithZeroChunks(t *testing.T) {
	provider := mock.NewProvider("no encontré información", nil)
	p := newTestPipeline(&fakeRetriever{}, provider)

	session := store.NewSession("s1")
	session.Phase = store.PhaseQA

	_, err := p.Answer(context.Background(), session, "q")
	require.NoError(t, err)
	assert.Equal(t, 2, session.TurnCount())
}

func TestAnswerGenerationFailureLeavesTranscriptUntouched(t *testing.T) {
	provider := mock.NewProvider("", errors.New("rate limited"))
	p := newTestPipeline(&fakeRetriever{}, provider)

	session := store.NewSession("s1")
	session.Phase = store.PhaseQA
	session.AppendTurn(store.RoleUser, "anterior")

	_, err := p.Answer(context.Background(), session, "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrGenerationFailure)
	assert.Equal(t, 1, session.TurnCount())
}

func TestAnswerFeedsHistoryBeforeCurrentQuestion(t *testing.T) {
	provider := mock.NewProvider("ok", nil)
	p := newTestPipeline(&fakeRetriever{}, provider)

	session := store.NewSession("s1")
	session.Phase = store.PhaseQA
	session.AppendTurn(store.RoleUser, "pregunta previa")
	session.AppendTurn(store.RoleAssistant, "respuesta previa")

	_, err := p.Answer(context.Background(), session, "nueva pregunta")
	require.NoError(t, err)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	prompt := calls[0][0].Content
	assert.Contains(t, prompt, "pregunta previa")
	assert.Contains(t, prompt, "respuesta previa")
	assert.Contains(t, prompt, "nueva pregunta")
}
