package memory

import (
	"sync"
	"testing"

	"retail-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateReturnsSamePointer(t *testing.T) {
	registry := NewSessionRegistry()

	first := registry.GetOrCreate("s1")
	second := registry.GetOrCreate("s1")

	assert.Same(t, first, second)
}

func TestGetOrCreateSharedTranscript(t *testing.T) {
	registry := NewSessionRegistry()

	registry.GetOrCreate("s1").AppendTurn(store.RoleUser, "hola")

	again := registry.GetOrCreate("s1")
	require.Equal(t, 1, again.TurnCount())
	assert.Equal(t, "hola", again.Turns()[0].Content)
}

func TestGetMissingSession(t *testing.T) {
	registry := NewSessionRegistry()

	_, found := registry.Get("nope")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	registry := NewSessionRegistry()
	registry.GetOrCreate("s1")

	registry.Delete("s1")

	_, found := registry.Get("s1")
	assert.False(t, found)
}

func TestList(t *testing.T) {
	registry := NewSessionRegistry()
	registry.GetOrCreate("s1")
	registry.GetOrCreate("s2")

	sessions := registry.List()
	assert.Len(t, sessions, 2)
}

func TestConcurrentGetOrCreateSingleSession(t *testing.T) {
	registry := NewSessionRegistry()

	var wg sync.WaitGroup
	results := make([]*store.Session, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = registry.GetOrCreate("s1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		assert.Same(t, results[0], results[i])
	}
}
