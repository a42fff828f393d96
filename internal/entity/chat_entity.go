package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is the persisted record of a conversation. The in-memory
// store.Session is the canonical read path; this row is the audit copy
// (phase and collected fields snapshot included).
type ChatSession struct {
	Id              uuid.UUID
	Phase           string
	CollectedFields map[string]string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// ChatTurn is one persisted transcript turn.
type ChatTurn struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Sequence      int
	CreatedAt     time.Time
}
