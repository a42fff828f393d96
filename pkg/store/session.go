package store

import "sync"

// Phase constants for the onboarding state machine. A session starts in
// PhaseInitial and ends in PhaseQA, which is absorbing.
const (
	PhaseInitial    = "initial"
	PhaseFrequentID = "frequent_id"
	PhaseNewID      = "new_id"
	PhaseNewName    = "new_name"
	PhaseNewPhone   = "new_phone"
	PhaseNewEmail   = "new_email"
	PhaseQA         = "qa"
)

// Collected field names
const (
	FieldIdentificacion = "identificacion"
	FieldNombre         = "nombre"
	FieldTelefono       = "telefono"
	FieldEmail          = "email"
)

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one user or assistant message within a session transcript.
type Turn struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Sequence int    `json:"sequence"`
}

// Session is the active conversation state held in memory. Turns are
// append-only; Fields is frozen once Phase reaches PhaseQA.
type Session struct {
	ID     string            `json:"id"`
	Phase  string            `json:"phase"`
	Fields map[string]string `json:"fields"`

	turns []Turn
	seq   int

	// Guards turns/seq so a reader never observes a partial append.
	tmu sync.Mutex

	// Serializes message processing for this session. At most one
	// in-flight request per session id. Held across slow calls, so
	// transcript reads use tmu instead.
	mu sync.Mutex
}

// NewSession creates a session in the initial phase.
func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Phase:  PhaseInitial,
		Fields: make(map[string]string),
	}
}

// Lock acquires the session's single-writer lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's single-writer lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// AppendTurn adds a turn to the end of the transcript and assigns its
// sequence number.
func (s *Session) AppendTurn(role, content string) Turn {
	s.tmu.Lock()
	defer s.tmu.Unlock()
	turn := Turn{Role: role, Content: content, Sequence: s.seq}
	s.seq++
	s.turns = append(s.turns, turn)
	return turn
}

// Turns returns a snapshot copy of the transcript in append order.
func (s *Session) Turns() []Turn {
	s.tmu.Lock()
	defer s.tmu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// TurnCount reports how many turns the transcript holds.
func (s *Session) TurnCount() int {
	s.tmu.Lock()
	defer s.tmu.Unlock()
	return len(s.turns)
}
