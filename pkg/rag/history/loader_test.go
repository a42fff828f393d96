package history

import (
	"fmt"
	"testing"

	"retail-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPreservesOrderAndRoles(t *testing.T) {
	session := store.NewSession("s1")
	session.AppendTurn(store.RoleUser, "hola")
	session.AppendTurn(store.RoleAssistant, "buenas")
	session.AppendTurn(store.RoleUser, "¿horarios?")

	messages := NewLoader().Load(session)

	require.Len(t, messages, 3)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "hola", messages[0].Content)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "user", messages[2].Role)
}

func TestLoadAppliesWindow(t *testing.T) {
	session := store.NewSession("s1")
	for i := 0; i < 30; i++ {
		session.AppendTurn(store.RoleUser, fmt.Sprintf("m%d", i))
	}

	messages := NewLoader().Load(session)

	require.Len(t, messages, DefaultWindow)
	// The most recent turns survive.
	assert.Equal(t, "m29", messages[len(messages)-1].Content)
	assert.Equal(t, "m20", messages[0].Content)
}

func TestLoadEmptySession(t *testing.T) {
	messages := NewLoader().Load(store.NewSession("s1"))
	assert.Empty(t, messages)
}

func TestLoadCustomWindow(t *testing.T) {
	session := store.NewSession("s1")
	for i := 0; i < 5; i++ {
		session.AppendTurn(store.RoleUser, fmt.Sprintf("m%d", i))
	}

	messages := NewLoaderWithWindow(2).Load(session)
	require.Len(t, messages, 2)
	assert.Equal(t, "m3", messages[0].Content)
	assert.Equal(t, "m4", messages[1].Content)
}
