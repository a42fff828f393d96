package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionDefaults(t *testing.T) {
	session := NewSession("s1")
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, PhaseInitial, session.Phase)
	assert.Empty(t, session.Fields)
	assert.Zero(t, session.TurnCount())
}

func TestAppendTurnSequencing(t *testing.T) {
	session := NewSession("s1")

	first := session.AppendTurn(RoleUser, "hola")
	second := session.AppendTurn(RoleAssistant, "buenas")

	assert.Equal(t, 0, first.Sequence)
	assert.Equal(t, 1, second.Sequence)

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "hola", turns[0].Content)
	assert.Equal(t, "buenas", turns[1].Content)
}

func TestTurnsReturnsSnapshot(t *testing.T) {
	session := NewSession("s1")
	session.AppendTurn(RoleUser, "hola")

	snapshot := session.Turns()
	session.AppendTurn(RoleAssistant, "buenas")

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, session.TurnCount())
}

func TestConcurrentAppendsKeepAllTurns(t *testing.T) {
	session := NewSession("s1")

	var wg sync.WaitGroup
	const writers = 10
	const perWriter = 20

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				session.AppendTurn(RoleUser, fmt.Sprintf("w%d-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	turns := session.Turns()
	require.Len(t, turns, writers*perWriter)

	// Sequence numbers are unique and dense.
	seen := make(map[int]bool, len(turns))
	for _, turn := range turns {
		assert.False(t, seen[turn.Sequence], "duplicate sequence %d", turn.Sequence)
		seen[turn.Sequence] = true
		assert.Less(t, turn.Sequence, writers*perWriter)
	}
}
