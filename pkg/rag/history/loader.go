package history

import (
	"retail-assistant-be/pkg/llm"
	"retail-assistant-be/pkg/store"
)

// DefaultWindow is how many recent turns are fed back to the model.
const DefaultWindow = 10

// Loader turns a session transcript into model-ready chat history.
type Loader struct {
	window int
}

func NewLoader() *Loader {
	return &Loader{
		window: DefaultWindow,
	}
}

func NewLoaderWithWindow(window int) *Loader {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Loader{
		window: window,
	}
}

// Load returns the most recent turns of the transcript in append order,
// capped to the configured window.
func (l *Loader) Load(session *store.Session) []llm.Message {
	turns := session.Turns()

	if len(turns) > l.window {
		turns = turns[len(turns)-l.window:]
	}

	messages := make([]llm.Message, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == store.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: turn.Content,
		})
	}

	return messages
}
