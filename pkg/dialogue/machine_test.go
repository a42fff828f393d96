package dialogue

import (
	"context"
	"errors"
	"testing"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory is an in-memory Directory for tests.
type fakeDirectory struct {
	customers map[string]*Customer
	lookupErr error
	createErr error
	created   []*Customer
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{customers: map[string]*Customer{}}
}

func (d *fakeDirectory) Lookup(ctx context.Context, identificacion string) (*Customer, error) {
	if d.lookupErr != nil {
		return nil, d.lookupErr
	}
	return d.customers[identificacion], nil
}

func (d *fakeDirectory) Create(ctx context.Context, customer *Customer) (*Customer, error) {
	if d.createErr != nil {
		return nil, d.createErr
	}
	if _, exists := d.customers[customer.Identificacion]; exists {
		return nil, entity.ErrDuplicateIdentification
	}
	d.customers[customer.Identificacion] = customer
	d.created = append(d.created, customer)
	return customer, nil
}

func TestStepInitialDisambiguation(t *testing.T) {
	m := NewMachine(newFakeDirectory())
	session := store.NewSession("s1")

	reply, err := m.Step(context.Background(), session, "hola")
	require.NoError(t, err)
	assert.Equal(t, store.PhaseInitial, session.Phase)
	assert.Equal(t, msgDisambiguate, reply)

	// Repeating the same unrecognized input keeps asking, phase stays.
	reply2, err := m.Step(context.Background(), session, "buenos días")
	require.NoError(t, err)
	assert.Equal(t, store.PhaseInitial, session.Phase)
	assert.Equal(t, reply, reply2)
}

func TestStepInitialMarkers(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPhase string
	}{
		{"frequent marker", "soy cliente frecuente", store.PhaseFrequentID},
		{"frequent marker uppercase", "FRECUENTE", store.PhaseFrequentID},
		{"new marker", "soy nuevo", store.PhaseNewID},
		{"both markers prefers frequent", "frecuente y nuevo", store.PhaseFrequentID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(newFakeDirectory())
			session := store.NewSession("s1")

			_, err := m.Step(context.Background(), session, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPhase, session.Phase)
		})
	}
}

func TestFrequentCustomerFlow(t *testing.T) {
	dir := newFakeDirectory()
	dir.customers["12345"] = &Customer{Identificacion: "12345", Nombre: "Maria Lopez"}

	m := NewMachine(dir)
	session := store.NewSession("s1")
	ctx := context.Background()

	_, err := m.Step(ctx, session, "frecuente")
	require.NoError(t, err)
	require.Equal(t, store.PhaseFrequentID, session.Phase)

	// Unknown id re-prompts without advancing.
	reply, err := m.Step(ctx, session, "99999")
	require.NoError(t, err)
	assert.Equal(t, store.PhaseFrequentID, session.Phase)
	assert.Contains(t, reply, "No encontramos esa identificación")

	// Known id lands in QA with a personalized welcome.
	reply, err = m.Step(ctx, session, "12345")
	require.NoError(t, err)
	assert.Equal(t, store.PhaseQA, session.Phase)
	assert.Contains(t, reply, "Maria Lopez")
	assert.Equal(t, "12345", session.Fields[store.FieldIdentificacion])
}

func TestNewCustomerFullRegistration(t *testing.T) {
	dir := newFakeDirectory()
	m := NewMachine(dir)
	session := store.NewSession("s1")
	ctx := context.Background()

	steps := []struct {
		input     string
		wantPhase string
	}{
		{"nuevo", store.PhaseNewID},
		{"12345", store.PhaseNewName},
		{"Maria Lopez", store.PhaseNewPhone},
		{"3001234567", store.PhaseNewEmail},
		{"a@b.com", store.PhaseQA},
	}

	for _, step := range steps {
		_, err := m.Step(ctx, session, step.input)
		require.NoError(t, err)
		require.Equal(t, step.wantPhase, session.Phase, "after input %q", step.input)
	}

	require.Len(t, dir.created, 1)
	created := dir.created[0]
	assert.Equal(t, "12345", created.Identificacion)
	assert.Equal(t, "Maria Lopez", created.Nombre)
	assert.Equal(t, "3001234567", created.Telefono)
	assert.Equal(t, "a@b.com", created.Email)

	assert.Equal(t, map[string]string{
		store.FieldIdentificacion: "12345",
		store.FieldNombre:         "Maria Lopez",
		store.FieldTelefono:       "3001234567",
		store.FieldEmail:          "a@b.com",
	}, session.Fields)
}

func TestInvalidInputKeepsPhase(t *testing.T) {
	tests := []struct {
		name  string
		phase string
		input string
	}{
		{"bad id in new_id", store.PhaseNewID, "abc"},
		{"bad name", store.PhaseNewName, "Maria123"},
		{"bad phone", store.PhaseNewPhone, "1234567890"},
		{"bad email", store.PhaseNewEmail, "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(newFakeDirectory())
			session := store.NewSession("s1")
			session.Phase = tt.phase

			reply, err := m.Step(context.Background(), session, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.phase, session.Phase)
			assert.Contains(t, reply, "Intenta de nuevo.")
		})
	}
}

func TestDuplicateIdInNewFlow(t *testing.T) {
	dir := newFakeDirectory()
	dir.customers["12345"] = &Customer{Identificacion: "12345", Nombre: "Maria Lopez"}

	m := NewMachine(dir)
	session := store.NewSession("s1")
	session.Phase = store.PhaseNewID

	reply, err := m.Step(context.Background(), session, "12345")
	require.NoError(t, err)
	assert.Equal(t, store.PhaseNewID, session.Phase)
	assert.Contains(t, reply, "ya está registrada")
}

func TestDirectoryFailureKeepsSessionIntact(t *testing.T) {
	dir := newFakeDirectory()
	dir.lookupErr = errors.New("connection refused")

	m := NewMachine(dir)
	session := store.NewSession("s1")
	session.Phase = store.PhaseFrequentID

	_, err := m.Step(context.Background(), session, "12345")
	require.Error(t, err)
	assert.Equal(t, store.PhaseFrequentID, session.Phase)
	assert.Empty(t, session.Fields)
}

func TestCreateFailureDoesNotCollectEmail(t *testing.T) {
	dir := newFakeDirectory()
	dir.createErr = errors.New("connection refused")

	m := NewMachine(dir)
	session := store.NewSession("s1")
	session.Phase = store.PhaseNewEmail
	session.Fields[store.FieldIdentificacion] = "12345"
	session.Fields[store.FieldNombre] = "Maria Lopez"
	session.Fields[store.FieldTelefono] = "3001234567"

	_, err := m.Step(context.Background(), session, "a@b.com")
	require.Error(t, err)
	assert.Equal(t, store.PhaseNewEmail, session.Phase)
	assert.NotContains(t, session.Fields, store.FieldEmail)
}

func TestDuplicateRaceAtCreateRestartsId(t *testing.T) {
	dir := newFakeDirectory()
	dir.customers["12345"] = &Customer{Identificacion: "12345"}

	m := NewMachine(dir)
	session := store.NewSession("s1")
	session.Phase = store.PhaseNewEmail
	session.Fields[store.FieldIdentificacion] = "12345"
	session.Fields[store.FieldNombre] = "Maria Lopez"
	session.Fields[store.FieldTelefono] = "3001234567"

	reply, err := m.Step(context.Background(), session, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, store.PhaseNewID, session.Phase)
	assert.Contains(t, reply, "ya está registrada")
}
