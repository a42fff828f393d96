package service

import (
	"context"
	"errors"
	"testing"

	"retail-assistant-be/internal/dto"
	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/repository/contract"
	"retail-assistant-be/internal/repository/memory"
	"retail-assistant-be/internal/repository/specification"
	"retail-assistant-be/internal/repository/unitofwork"
	"retail-assistant-be/pkg/dialogue"
	"retail-assistant-be/pkg/llm/mock"
	"retail-assistant-be/pkg/rag/history"
	"retail-assistant-be/pkg/rag/pipeline"
	"retail-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeChatSessionRepo struct {
	created []*entity.ChatSession
	updated []*entity.ChatSession
}

func (r *fakeChatSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.created = append(r.created, session)
	return nil
}
func (r *fakeChatSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.updated = append(r.updated, session)
	return nil
}
func (r *fakeChatSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	return nil, nil
}
func (r *fakeChatSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return nil, nil
}

type fakeChatTurnRepo struct {
	bulk [][]*entity.ChatTurn
}

func (r *fakeChatTurnRepo) Create(ctx context.Context, turn *entity.ChatTurn) error { return nil }
func (r *fakeChatTurnRepo) CreateBulk(ctx context.Context, turns []*entity.ChatTurn) error {
	r.bulk = append(r.bulk, turns)
	return nil
}
func (r *fakeChatTurnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error) {
	return nil, nil
}
func (r *fakeChatTurnRepo) CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.Identificacion] = customer
	return nil
}
func (r *fakeCustomerRepo) FindByIdentificacion(ctx context.Context, identificacion string) (*entity.Customer, error) {
	return r.customers[identificacion], nil
}
func (r *fakeCustomerRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeUnitOfWork struct {
	sessions  *fakeChatSessionRepo
	turns     *fakeChatTurnRepo
	customers *fakeCustomerRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }
func (u *fakeUnitOfWork) CustomerRepository() contract.CustomerRepository {
	return u.customers
}
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessions
}
func (u *fakeUnitOfWork) ChatTurnRepository() contract.ChatTurnRepository {
	return u.turns
}
func (u *fakeUnitOfWork) KnowledgeChunkRepository() contract.KnowledgeChunkRepository {
	return nil
}
func (u *fakeUnitOfWork) KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository {
	return nil
}

type fakeRepoFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepoFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeDirectory struct {
	customers map[string]*dialogue.Customer
	err       error
}

func (d *fakeDirectory) Lookup(ctx context.Context, identificacion string) (*dialogue.Customer, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.customers[identificacion], nil
}

func (d *fakeDirectory) Create(ctx context.Context, customer *dialogue.Customer) (*dialogue.Customer, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.customers[customer.Identificacion] = customer
	return customer, nil
}

type fakeRetriever struct {
	chunks []*entity.ScoredKnowledgeChunk
}

func (r *fakeRetriever) Retrieve(ctx context.Context, question string) ([]*entity.ScoredKnowledgeChunk, error) {
	return r.chunks, nil
}

// --- Harness ---

type harness struct {
	service  IAssistantService
	registry *memory.SessionRegistry
	uow      *fakeUnitOfWork
	provider *mock.Provider
	dir      *fakeDirectory
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	uow := &fakeUnitOfWork{
		sessions:  &fakeChatSessionRepo{},
		turns:     &fakeChatTurnRepo{},
		customers: &fakeCustomerRepo{customers: map[string]*entity.Customer{}},
	}
	registry := memory.NewSessionRegistry()
	dir := &fakeDirectory{customers: map[string]*dialogue.Customer{}}
	provider := mock.NewProvider("respuesta generada", nil)

	answerPipeline := pipeline.NewAnswerPipeline(
		&fakeRetriever{},
		provider,
		history.NewLoader(),
		nopLogger{},
	)

	svc := NewAssistantService(
		registry,
		dialogue.NewMachine(dir),
		answerPipeline,
		&fakeRepoFactory{uow: uow},
		nopLogger{},
	)

	return &harness{
		service:  svc,
		registry: registry,
		uow:      uow,
		provider: provider,
		dir:      dir,
	}
}

func (h *harness) send(t *testing.T, sessionId, message string) *dto.SendMessageResponse {
	t.Helper()
	res, err := h.service.SendMessage(context.Background(), sessionId, &dto.SendMessageRequest{Message: message})
	require.NoError(t, err)
	return res
}

// --- Tests ---

func TestCreateSessionStartsInitial(t *testing.T) {
	h := newHarness(t)

	res, err := h.service.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.PhaseInitial, res.Phase)
	assert.NotEmpty(t, res.Greeting)

	_, found := h.registry.Get(res.SessionId)
	assert.True(t, found)
	assert.Len(t, h.uow.sessions.created, 1)
}

func TestSendMessageUnknownSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.service.SendMessage(context.Background(), "missing", &dto.SendMessageRequest{Message: "hola"})
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestOnboardingThroughQA(t *testing.T) {
	h := newHarness(t)

	created, err := h.service.CreateSession(context.Background())
	require.NoError(t, err)
	id := created.SessionId

	res := h.send(t, id, "nuevo")
	assert.Equal(t, store.PhaseNewID, res.Phase)

	res = h.send(t, id, "12345")
	assert.Equal(t, store.PhaseNewName, res.Phase)

	res = h.send(t, id, "Maria Lopez")
	assert.Equal(t, store.PhaseNewPhone, res.Phase)

	res = h.send(t, id, "3001234567")
	assert.Equal(t, store.PhaseNewEmail, res.Phase)

	res = h.send(t, id, "a@b.com")
	assert.Equal(t, store.PhaseQA, res.Phase)
	require.Contains(t, h.dir.customers, "12345")

	// Now in QA, questions go through the answer pipeline.
	res = h.send(t, id, "¿a qué hora abren?")
	assert.Equal(t, store.PhaseQA, res.Phase)
	assert.Equal(t, "respuesta generada", res.Reply)

	history, err := h.service.GetChatHistory(context.Background(), id)
	require.NoError(t, err)
	// 5 onboarding exchanges plus one QA exchange, two turns each.
	assert.Len(t, history.Turns, 12)
}

func TestOnboardingTurnsAreRecorded(t *testing.T) {
	h := newHarness(t)

	created, err := h.service.CreateSession(context.Background())
	require.NoError(t, err)

	res := h.send(t, created.SessionId, "hola")
	assert.Equal(t, store.PhaseInitial, res.Phase)

	hist, err := h.service.GetChatHistory(context.Background(), created.SessionId)
	require.NoError(t, err)
	require.Len(t, hist.Turns, 2)
	assert.Equal(t, store.RoleUser, hist.Turns[0].Role)
	assert.Equal(t, "hola", hist.Turns[0].Content)
	assert.Equal(t, store.RoleAssistant, hist.Turns[1].Role)

	// The same turns were mirrored to the audit store.
	require.Len(t, h.uow.turns.bulk, 1)
	assert.Len(t, h.uow.turns.bulk[0], 2)
}

func TestGenerationFailureApologizesWithoutRecording(t *testing.T) {
	h := newHarness(t)
	h.provider.Err = errors.New("rate limited")

	created, err := h.service.CreateSession(context.Background())
	require.NoError(t, err)
	id := created.SessionId

	session, _ := h.registry.Get(id)
	session.Phase = store.PhaseQA

	res := h.send(t, id, "¿horarios?")
	assert.Equal(t, pipeline.ApologyMessage, res.Reply)
	assert.Equal(t, store.PhaseQA, res.Phase)

	hist, err := h.service.GetChatHistory(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, hist.Turns)
}

func TestDirectoryFailureKeepsPhase(t *testing.T) {
	h := newHarness(t)
	h.dir.err = entity.ErrDirectoryUnavailable

	created, err := h.service.CreateSession(context.Background())
	require.NoError(t, err)
	id := created.SessionId

	session, _ := h.registry.Get(id)
	session.Phase = store.PhaseFrequentID

	res := h.send(t, id, "12345")
	assert.Equal(t, store.PhaseFrequentID, res.Phase)
	assert.NotEmpty(t, res.Reply)

	// Directory comes back, the same input now succeeds.
	h.dir.err = nil
	h.dir.customers["12345"] = &dialogue.Customer{Identificacion: "12345", Nombre: "Maria Lopez"}

	res = h.send(t, id, "12345")
	assert.Equal(t, store.PhaseQA, res.Phase)
}

func TestGetAllSessions(t *testing.T) {
	h := newHarness(t)

	_, err := h.service.CreateSession(context.Background())
	require.NoError(t, err)
	_, err = h.service.CreateSession(context.Background())
	require.NoError(t, err)

	sessions, err := h.service.GetAllSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestGetCustomer(t *testing.T) {
	h := newHarness(t)
	h.uow.customers.customers["12345"] = &entity.Customer{
		Identificacion: "12345",
		Nombre:         "Maria Lopez",
		Email:          "a@b.com",
	}

	res, err := h.service.GetCustomer(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", res.Nombre)

	_, err = h.service.GetCustomer(context.Background(), "99999")
	assert.ErrorIs(t, err, entity.ErrCustomerNotFound)
}
